// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenizeShellCommandBasic(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"open /Applications/Foo.app", []string{"open", "/Applications/Foo.app"}},
		{"  echo   hi  ", []string{"echo", "hi"}},
		{"echo 'a b c'", []string{"echo", "a b c"}},
		{`echo "a b c"`, []string{"echo", "a b c"}},
		{`echo "a \"b\" c"`, []string{"echo", `a "b" c`}},
		{`echo 'a\nb'`, []string{"echo", `a\nb`}},
		{`say "it's fine"`, []string{"say", "it's fine"}},
	}
	for _, c := range cases {
		got, err := tokenizeShellCommand(c.in)
		if err != nil {
			t.Fatalf("tokenizeShellCommand(%q): unexpected error: %v", c.in, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("tokenizeShellCommand(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestTokenizeShellCommandDenied(t *testing.T) {
	denied := []string{
		"echo hi; rm -rf /",
		"echo hi | cat",
		"echo hi && echo bye",
		"echo hi || echo bye",
		"echo `whoami`",
		"echo $(whoami)",
		"echo ${HOME}",
		"echo hi < file",
		"echo hi > file",
		"sleep 10 &",
	}
	for _, in := range denied {
		if _, err := tokenizeShellCommand(in); !errors.Is(err, ErrDeniedMetacharacter) {
			t.Errorf("tokenizeShellCommand(%q): got err %v, want ErrDeniedMetacharacter", in, err)
		}
	}
}

func TestTokenizeShellCommandEmpty(t *testing.T) {
	if _, err := tokenizeShellCommand("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("empty command: got %v, want ErrEmptyCommand", err)
	}
}

func TestTokenizeShellCommandUnterminatedQuote(t *testing.T) {
	if _, err := tokenizeShellCommand(`echo "unterminated`); err == nil {
		t.Error("expected error for unterminated double quote")
	}
	if _, err := tokenizeShellCommand(`echo 'unterminated`); err == nil {
		t.Error("expected error for unterminated single quote")
	}
}
