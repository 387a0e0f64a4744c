// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package circuit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Circuit_Registers(t *testing.T) {
	c := NewCircuit("test")
	a, err := c.AddRegister("a", 3)
	require.NoError(t, err)
	b, err := c.AddRegister("b", 2)
	require.NoError(t, err)
	//
	assert.Equal(t, uint(5), c.Width())
	assert.Equal(t, View{0, 1, 2}, a.View())
	assert.Equal(t, View{3, 4}, b.View())
	assert.Equal(t, Qubit(4), b.Qubit(1))
	assert.True(t, b.Contains(3))
	assert.False(t, b.Contains(2))
	//
	_, err = c.AddRegister("a", 1)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	_, err = c.AddRegister("c", 0)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_Circuit_Append(t *testing.T) {
	c := NewCircuit("test")
	_, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	//
	assert.NoError(t, c.Append(Gate{Kind: CX, Controls: View{0}, Targets: View{1}}))
	// Unallocated
	assert.Error(t, c.Append(Gate{Kind: X, Targets: View{3}}))
	// Repeated qubit
	assert.Error(t, c.Append(Gate{Kind: CX, Controls: View{1}, Targets: View{1}}))
	// Wrong arity
	assert.Error(t, c.Append(Gate{Kind: CSWAP, Controls: View{0}, Targets: View{1}}))
	assert.Error(t, c.Append(Gate{Kind: CCX, Controls: View{0}, Targets: View{1}}))
	//
	assert.Equal(t, 1, c.Len())
}

func Test_Circuit_AppendInverse(t *testing.T) {
	c := NewCircuit("test")
	_, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	//
	c.H(0)
	start := c.Len()
	c.X(1)
	c.CX(1, 2)
	c.CCX(0, 1, 2)
	end := c.Len()
	require.NoError(t, c.AppendInverse(start, end))
	//
	gates := c.Gates()
	require.Len(t, gates, 7)
	//
	for i := 0; i < 3; i++ {
		assert.Equal(t, gates[start+i], gates[len(gates)-1-i])
	}
	//
	assert.Error(t, c.AppendInverse(3, 2))
	assert.Error(t, c.AppendInverse(0, 100))
}

func Test_Circuit_Measure(t *testing.T) {
	c := NewCircuit("test")
	q, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	//
	c.X(q.Qubit(0))
	creg := c.Measure("out", q.View())
	//
	assert.Equal(t, uint(3), creg.Size)
	assert.Equal(t, uint(3), c.ClassicalWidth())
	assert.Equal(t, []uint{0, 1, 2}, c.Gates()[1].Clbits)
	assert.Error(t, c.AppendInverse(0, c.Len()))
}

func Test_Mcx_Small(t *testing.T) {
	for _, mode := range []MctMode{NOANCILLA, BASIC, ADVANCED} {
		c := NewCircuit("test")
		_, err := c.AddRegister("q", 4)
		require.NoError(t, err)
		//
		require.NoError(t, c.Mcx(nil, 3, nil, mode))
		require.NoError(t, c.Mcx(View{0}, 3, nil, mode))
		require.NoError(t, c.Mcx(View{0, 1}, 3, nil, mode))
		//
		kinds := []Kind{c.Gates()[0].Kind, c.Gates()[1].Kind, c.Gates()[2].Kind}
		assert.Equal(t, []Kind{X, CX, CCX}, kinds)
	}
}

func Test_Mcx_Native(t *testing.T) {
	c := NewCircuit("test")
	q, err := c.AddRegister("q", 6)
	require.NoError(t, err)
	//
	require.NoError(t, c.Mcx(View{0, 1, 2, 3}, 4, nil, NOANCILLA))
	require.NoError(t, c.Mcx(View{0, 1, 2, 3}, 4, View{5}, ADVANCED))
	//
	assert.Equal(t, Gate{Kind: MCX, Controls: View{0, 1, 2, 3}, Targets: View{4}}, c.Gates()[0])
	assert.Equal(t, View{5}, c.Gates()[1].Ancillas)
	//
	err = c.Mcx(q.View()[:4], 4, nil, ADVANCED)
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	assert.Equal(t, 2, c.Len())
}

func Test_Mcx_Basic(t *testing.T) {
	c := NewCircuit("test")
	_, err := c.AddRegister("q", 8)
	require.NoError(t, err)
	// Five controls need three ancillas.
	err = c.Mcx(View{0, 1, 2, 3, 4}, 5, View{6, 7}, BASIC)
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	assert.Equal(t, 0, c.Len())
	//
	_, err = c.AddRegister("a", 1)
	require.NoError(t, err)
	require.NoError(t, c.Mcx(View{0, 1, 2, 3, 4}, 5, View{6, 7, 8}, BASIC))
	// Compute (3), flip (1), uncompute (3)
	assert.Equal(t, 7, c.Len())
	//
	for _, g := range c.Gates() {
		assert.Equal(t, CCX, g.Kind)
	}
	// Symmetric around the flip
	gates := c.Gates()
	assert.Equal(t, View{5}, gates[3].Targets)
	//
	for i := 0; i < 3; i++ {
		assert.Equal(t, gates[i], gates[6-i])
	}
}

func Test_Mcx_Overlap(t *testing.T) {
	c := NewCircuit("test")
	_, err := c.AddRegister("q", 6)
	require.NoError(t, err)
	//
	err = c.Mcx(View{0, 1, 2}, 2, nil, NOANCILLA)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	err = c.Mcx(View{0, 1, 2}, 3, View{1}, BASIC)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_ParseMctMode(t *testing.T) {
	for _, mode := range []MctMode{NOANCILLA, BASIC, ADVANCED} {
		m, err := ParseMctMode(strings.ToUpper(mode.String()))
		require.NoError(t, err)
		assert.Equal(t, mode, m)
	}
	//
	_, err := ParseMctMode("fancy")
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_Stats(t *testing.T) {
	c := NewCircuit("test")
	_, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	//
	c.H(0, 1, 2)
	c.Barrier()
	c.CX(0, 1)
	c.CX(1, 2)
	c.X(0)
	//
	info := Stats(c)
	assert.Equal(t, uint(3), info.Width)
	assert.Equal(t, uint(6), info.Size)
	assert.Equal(t, uint(3), info.Depth)
	assert.Equal(t, uint(3), info.Counts[H])
	assert.Equal(t, uint(2), info.Counts[CX])
	assert.Equal(t, uint(0), info.Counts[BARRIER])
	assert.Equal(t, uint(1), c.MaxControls())
	assert.Equal(t, "width: 3, depth: 3, size: 6, ops: {h: 3, x: 1, cx: 2}", info.String())
}

func Test_Qasm(t *testing.T) {
	var buf bytes.Buffer
	//
	c := NewCircuit("test")
	q, err := c.AddRegister("q", 2)
	require.NoError(t, err)
	f, err := c.AddRegister("f", 3)
	require.NoError(t, err)
	//
	c.H(q.Qubit(0))
	c.CSwap(q.Qubit(0), f.Qubit(0), f.Qubit(1))
	require.NoError(t, c.Mcx(Concat(q.View(), f.View()[:2]), f.Qubit(2), nil, NOANCILLA))
	c.Barrier()
	c.Measure("m", q.View())
	//
	require.NoError(t, WriteQasm(&buf, c))
	lines := strings.Split(buf.String(), "\n")
	//
	assert.Equal(t, "OPENQASM 2.0;", lines[0])
	assert.Equal(t, []string{
		"qreg q[2];",
		"qreg f[3];",
		"creg m[2];",
		"h q[0];",
		"cswap q[0],f[0],f[1];",
		"c4x q[0],q[1],f[0],f[1],f[2];",
		"barrier q,f;",
		"measure q[0] -> m[0];",
		"measure q[1] -> m[1];",
		"",
	}, lines[3:])
}

func Test_Qasm_TooWide(t *testing.T) {
	c := NewCircuit("test")
	q, err := c.AddRegister("q", 6)
	require.NoError(t, err)
	require.NoError(t, c.Mcx(q.View()[:5], q.Qubit(5), nil, NOANCILLA))
	//
	assert.True(t, errors.Is(WriteQasm(&bytes.Buffer{}, c), fault.ErrInvalidParameter))
}

func Test_Log(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		//
		c := NewCircuit("test")
		q, err := c.AddRegister("q", 4)
		require.NoError(t, err)
		//
		c.H(q.View()...)
		require.NoError(t, c.Mcx(q.View()[:3], q.Qubit(3), nil, NOANCILLA))
		c.Measure("m", q.View())
		//
		require.NoError(t, WriteLog(&buf, c, compress))
		//
		d, err := ReadLog(&buf, compress)
		require.NoError(t, err)
		assert.Equal(t, c.Id(), d.Id())
		assert.Equal(t, c.Name(), d.Name())
		assert.Equal(t, c.Registers(), d.Registers())
		assert.Equal(t, c.ClassicalRegisters(), d.ClassicalRegisters())
		assert.Equal(t, c.Gates(), d.Gates())
	}
}

func Test_Log_Invalid(t *testing.T) {
	log := `{"name":"bad","registers":[{"Name":"q","Offset":0,"Size":1}],"gates":[{"gate":"cx","controls":[0],"targets":[1]}]}`
	_, err := ReadLog(strings.NewReader(log), false)
	assert.Error(t, err)
	//
	_, err = ReadLog(strings.NewReader("not json"), false)
	assert.Error(t, err)
}
