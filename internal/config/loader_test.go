package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bluepill.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
programs:
  web:
    command: /usr/local/bin/web --listen :8080
    dir: /srv/web
    pidFile: /run/web.pid
    user: www-data
    group: www-data
    groups: [adm]
    env:
      RAILS_ENV: production
    stdout: /var/log/web.log
    stderr: /var/log/web.log
  worker:
    command: bundle exec rake jobs:work
`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	web, err := doc.Program("web")
	if err != nil {
		t.Fatalf("program web: %v", err)
	}
	if web.Command != "/usr/local/bin/web --listen :8080" {
		t.Fatalf("command = %q", web.Command)
	}
	if web.Privilege.User != "www-data" || web.Privilege.Group != "www-data" {
		t.Fatalf("privilege = %+v", web.Privilege)
	}
	if len(web.Privilege.Groups) != 1 || web.Privilege.Groups[0] != "adm" {
		t.Fatalf("groups = %v", web.Privilege.Groups)
	}
	if web.Stdio.Stdout != "/var/log/web.log" || web.Stdio.Stdout != web.Stdio.Stderr {
		t.Fatalf("stdio = %+v", web.Stdio)
	}
	if web.Env["RAILS_ENV"] != "production" {
		t.Fatalf("env = %v", web.Env)
	}

	if got := doc.Names(); len(got) != 2 || got[0] != "web" || got[1] != "worker" {
		t.Fatalf("names = %v", got)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
programs:
  web:
    command: sleep 5
    restartPolicy: always
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadRejectsMissingCommand(t *testing.T) {
	path := writeConfig(t, `
programs:
  web:
    dir: /srv/web
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected missing command to be rejected")
	}
}

func TestLoadRejectsUnparsableCommand(t *testing.T) {
	path := writeConfig(t, `
programs:
  web:
    command: 'unbalanced "quote'
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected unparsable command to be rejected")
	}
}

func TestProgramLookupMissing(t *testing.T) {
	doc := &File{Programs: map[string]*Program{}}
	if _, err := doc.Program("ghost"); err == nil {
		t.Fatal("expected lookup failure")
	}
}
