package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) BiometricLogin(ctx context.Context) error {
	f.calls = append(f.calls, "bio")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) EnrollBiometric(ctx context.Context) error {
	f.calls = append(f.calls, "enroll")
	return nil
}
func (f *fakeExec) ShowToken(ctx context.Context) error {
	f.calls = append(f.calls, "token")
	return nil
}
func (f *fakeExec) Health(ctx context.Context) error { f.calls = append(f.calls, "health"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"token",
		"enroll",
		"logout",
		"biologin",
		"bio",
		"health",
		"",
		"foobar",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"register", "login", "token", "enroll", "logout", "bio", "bio", "health"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_EOFStops(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("health"))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "health" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
