//go:build !windows

package privdrop

import (
	"os"
	"os/user"
	"testing"
)

func TestResolveUnknownGroupAbortsBeforeMutation(t *testing.T) {
	uid := os.Getuid()
	gid := os.Getgid()

	spec := Spec{Group: "bluepill-no-such-group"}
	if _, err := spec.Resolve(); err == nil {
		t.Fatal("expected resolution failure for unknown group")
	}

	if os.Getuid() != uid || os.Getgid() != gid {
		t.Fatalf("identity changed on failed resolution: uid %d->%d gid %d->%d",
			uid, os.Getuid(), gid, os.Getgid())
	}
}

func TestResolveUnknownUser(t *testing.T) {
	spec := Spec{User: "bluepill-no-such-user"}
	if _, err := spec.Resolve(); err == nil {
		t.Fatal("expected resolution failure for unknown user")
	}
}

func TestResolveCurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}

	id, err := Spec{User: current.Username}.Resolve()
	if err != nil {
		t.Fatalf("resolve current user: %v", err)
	}
	if !id.hasUID {
		t.Fatal("resolved identity missing uid")
	}
	if int(id.UID) != os.Getuid() {
		t.Fatalf("resolved uid %d, want %d", id.UID, os.Getuid())
	}
	if id.Home == "" {
		t.Fatal("resolved identity missing home directory")
	}
}

func TestEmptySpec(t *testing.T) {
	if !(Spec{}).Empty() {
		t.Fatal("zero spec should be empty")
	}
	if (Spec{User: "nobody"}).Empty() {
		t.Fatal("spec with user should not be empty")
	}

	id, err := Spec{}.Resolve()
	if err != nil {
		t.Fatalf("resolve empty spec: %v", err)
	}
	if err := id.Apply(); err != nil {
		t.Fatalf("apply empty identity: %v", err)
	}
}

func TestApplyNoopWhenUnprivileged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root")
	}

	current, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}
	id, err := Spec{User: current.Username}.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	uid := os.Getuid()
	if err := id.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if os.Getuid() != uid {
		t.Fatalf("uid changed by unprivileged apply: %d -> %d", uid, os.Getuid())
	}
	if id.Credential() != nil {
		t.Fatal("credential should be nil for unprivileged caller")
	}
}
