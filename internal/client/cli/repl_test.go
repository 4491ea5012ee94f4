package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Open(ctx context.Context) error        { return f.record("open") }
func (f *fakeExec) Master(ctx context.Context) error      { return f.record("master") }
func (f *fakeExec) SetStatus(ctx context.Context) error   { return f.record("status") }
func (f *fakeExec) GenerateDoc(ctx context.Context) error { return f.record("gendoc") }
func (f *fakeExec) ShowInfo(ctx context.Context) error    { return f.record("info") }
func (f *fakeExec) EditInfo(ctx context.Context) error    { return f.record("editinfo") }

func (f *fakeExec) ListFindings(ctx context.Context) error    { return f.record("list") }
func (f *fakeExec) ShowCards(ctx context.Context) error       { return f.record("cards") }
func (f *fakeExec) UseFinding(ctx context.Context) error      { return f.record("use") }
func (f *fakeExec) BeginEdit(ctx context.Context) error       { return f.record("edit") }
func (f *fakeExec) CancelEdit(ctx context.Context) error      { return f.record("cancel") }
func (f *fakeExec) Save(ctx context.Context) error            { return f.record("save") }
func (f *fakeExec) AddFinding(ctx context.Context) error      { return f.record("add") }
func (f *fakeExec) EditFinding(ctx context.Context) error     { return f.record("set") }
func (f *fakeExec) AttachImage(ctx context.Context) error     { return f.record("img") }
func (f *fakeExec) DeleteFinding(ctx context.Context) error   { return f.record("del") }
func (f *fakeExec) ToggleSelect(ctx context.Context) error    { return f.record("sel") }
func (f *fakeExec) ToggleSelectAll(ctx context.Context) error { return f.record("selall") }
func (f *fakeExec) DeleteSelected(ctx context.Context) error  { return f.record("delsel") }

func (f *fakeExec) ListMaterials(ctx context.Context) error           { return f.record("mats") }
func (f *fakeExec) BeginMaterialEdit(ctx context.Context) error       { return f.record("medit") }
func (f *fakeExec) CancelMaterialEdit(ctx context.Context) error      { return f.record("mcancel") }
func (f *fakeExec) SaveMaterials(ctx context.Context) error           { return f.record("msave") }
func (f *fakeExec) AddMaterial(ctx context.Context) error             { return f.record("madd") }
func (f *fakeExec) EditMaterial(ctx context.Context) error            { return f.record("mset") }
func (f *fakeExec) RemoveMaterialRow(ctx context.Context) error       { return f.record("mdel") }
func (f *fakeExec) ClearMaterials(ctx context.Context) error          { return f.record("mclear") }
func (f *fakeExec) ToggleMaterial(ctx context.Context) error          { return f.record("msel") }
func (f *fakeExec) ToggleMaterialAll(ctx context.Context) error       { return f.record("mselall") }
func (f *fakeExec) DeleteSelectedMaterials(ctx context.Context) error { return f.record("mdelsel") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list", // rejected: not logged in
		"login",
		"help",
		"open",
		"list",
		"use",
		"edit",
		"add",
		"save",
		"mats",
		"medit",
		"msave",
		"gendoc",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "open", "list", "use", "edit", "add", "save", "mats", "medit", "msave", "gendoc"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_NotLoggedInBlocksCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("list\nsave\nmaster\nquit\n")
	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
