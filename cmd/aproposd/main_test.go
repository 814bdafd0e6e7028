package main

import "testing"

func TestDBFlagSetAccumulates(t *testing.T) {
	d := make(dbFlag)
	if err := d.Set("default=/var/db/default.db"); err != nil {
		t.Fatal(err)
	}
	if err := d.Set("extra=/var/db/extra.db"); err != nil {
		t.Fatal(err)
	}
	if d["default"] != "/var/db/default.db" || d["extra"] != "/var/db/extra.db" {
		t.Fatalf("dbFlag after Set = %v", d)
	}
}

func TestDBFlagSetRejectsMissingEquals(t *testing.T) {
	d := make(dbFlag)
	if err := d.Set("no-equals-sign"); err == nil {
		t.Fatal("Set succeeded on a value with no name=path separator")
	}
}

func TestDBFlagString(t *testing.T) {
	d := dbFlag{"default": "/var/db/default.db"}
	if got := d.String(); got != "default=/var/db/default.db" {
		t.Fatalf("String() = %q", got)
	}
}
