package emulator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		op   uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS  123"},
		{0x1234, "GOTO 234"},
		{0x2208, "CALL 208"},
		{0x3A33, "SE   VA,#33"},
		{0x4012, "SNE  V0,#12"},
		{0x5120, "SE   V1,V2"},
		{0x5121, "??"},
		{0x6355, "LD   V3,#55"},
		{0x78F0, "ADD  V8,#F0"},
		{0x8450, "LD   V4,V5"},
		{0x8231, "OR   V2,V3"},
		{0x8012, "AND  V0,V1"},
		{0x8673, "XOR  V6,V7"},
		{0x8894, "ADD  V8,V9"},
		{0x8AB5, "SUB  VA,VB"},
		{0x8CD6, "SHR  VC"},
		{0x8EF7, "SUBN VE,VF"},
		{0x801E, "SHL  V0"},
		{0x8019, "??"},
		{0x9120, "SNE  V1,V2"},
		{0xA123, "LD   I,#123"},
		{0xB100, "JP   V0,#100"},
		{0xC80F, "RND  V8,#0F"},
		{0xD128, "DRW  V1,V2,8"},
		{0xE09E, "SKP  V0"},
		{0xE1A1, "SKNP V1"},
		{0xE1A2, "??"},
		{0xF107, "LD   V1,DT"},
		{0xF20A, "LD   V2,K"},
		{0xF215, "LD   DT,V2"},
		{0xF318, "LD   ST,V3"},
		{0xF41E, "ADD  I,V4"},
		{0xF529, "LD   F,V5"},
		{0xF633, "LD   B,V6"},
		{0xF755, "LD   [I],V7"},
		{0xF865, "LD   V8,[I]"},
		{0xF899, "??"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%04X", test.op), func(t *testing.T) {
			assert.Equal(t, test.want, Disassemble(test.op))
		})
	}
}
