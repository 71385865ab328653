package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Setenv("PONG_ENV", "")

	o, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != "server" || o.env != "" {
		t.Errorf("defaults %+v, want server mode and no env", o)
	}

	o, err = parseFlags([]string{"-m", "local", "--env", "test"})
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != "local" || o.env != "test" {
		t.Errorf("got %+v, want local/test", o)
	}

	if _, err := parseFlags([]string{"--bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
}
