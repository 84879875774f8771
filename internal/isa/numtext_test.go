// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package isa_test

import (
	"testing"

	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"42", 42},
		{"0x2A", 42},
		{"052", 42}, // leading-zero octal
		{"0", 0},
	}
	for _, c := range cases {
		got, err := isa.ParseNumber(c.in)
		if err != nil {
			t.Errorf("ParseNumber(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", c.in, got, c.want)
		}
	}
	if _, err := isa.ParseNumber("not-a-number"); err == nil {
		t.Error("ParseNumber(\"not-a-number\") should fail")
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"2A", 42},
		{"0x2A", 42},
		{"0X2a", 42},
		{"ff", 255},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := isa.ParseHex(c.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHex(%q) = %d, want %d", c.in, got, c.want)
		}
	}
	if got, err := isa.ParseHex("10"); err != nil || got != 16 {
		t.Errorf(`ParseHex("10") = %d, %v, want 16, nil (decimal "10" is hex)`, got, err)
	}
	if _, err := isa.ParseHex("0xZZ"); err == nil {
		t.Error("ParseHex(\"0xZZ\") should fail")
	}
}
