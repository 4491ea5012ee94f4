package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Open(ctx context.Context) error
	Master(ctx context.Context) error
	SetStatus(ctx context.Context) error
	GenerateDoc(ctx context.Context) error

	ShowInfo(ctx context.Context) error
	EditInfo(ctx context.Context) error

	ListFindings(ctx context.Context) error
	ShowCards(ctx context.Context) error
	UseFinding(ctx context.Context) error
	BeginEdit(ctx context.Context) error
	CancelEdit(ctx context.Context) error
	Save(ctx context.Context) error
	AddFinding(ctx context.Context) error
	EditFinding(ctx context.Context) error
	AttachImage(ctx context.Context) error
	DeleteFinding(ctx context.Context) error
	ToggleSelect(ctx context.Context) error
	ToggleSelectAll(ctx context.Context) error
	DeleteSelected(ctx context.Context) error

	ListMaterials(ctx context.Context) error
	BeginMaterialEdit(ctx context.Context) error
	CancelMaterialEdit(ctx context.Context) error
	SaveMaterials(ctx context.Context) error
	AddMaterial(ctx context.Context) error
	EditMaterial(ctx context.Context) error
	RemoveMaterialRow(ctx context.Context) error
	ClearMaterials(ctx context.Context) error
	ToggleMaterial(ctx context.Context) error
	ToggleMaterialAll(ctx context.Context) error
	DeleteSelectedMaterials(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the PIR editor CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - open           — open a document by key
//	  - master         — list the master dashboard
//	  - status         — update a master row's status
//	  - info | editinfo — show / edit the general info header
//	  - list | cards   — findings as a table / as cards
//	  - use            — choose the active finding for material editing
//	  - edit | cancel | save — finding edit mode
//	  - add | set | img | del — add / edit / attach image / delete remotely
//	  - sel | selall | delsel — selection and batch delete
//	  - mats | medit | mcancel | msave — materials of the active finding
//	  - madd | mset | mdel | mclear — material row operations
//	  - msel | mselall | mdelsel — material selection and batch delete
//	  - gendoc         — generate the report document
//	  - logout, exit | quit
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pir> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, exit")
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Document: open, master, status, info, editinfo, gendoc")
			printlnFn("Findings: (l)ist, cards, use, edit, cancel, save, add, set, img, del, sel, selall, delsel")
			printlnFn("Materials: (m)ats, medit, mcancel, msave, madd, mset, mdel, mclear, msel, mselall, mdelsel")
			printlnFn("Session: logout, exit")

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "open":
			_ = a.Open(ctx)
		case "master":
			_ = a.Master(ctx)
		case "status":
			_ = a.SetStatus(ctx)
		case "gendoc":
			_ = a.GenerateDoc(ctx)

		case "info":
			_ = a.ShowInfo(ctx)
		case "editinfo":
			_ = a.EditInfo(ctx)

		case "l", "list":
			_ = a.ListFindings(ctx)
		case "cards":
			_ = a.ShowCards(ctx)
		case "use":
			_ = a.UseFinding(ctx)
		case "edit":
			_ = a.BeginEdit(ctx)
		case "cancel":
			_ = a.CancelEdit(ctx)
		case "save":
			_ = a.Save(ctx)
		case "add":
			_ = a.AddFinding(ctx)
		case "set":
			_ = a.EditFinding(ctx)
		case "img":
			_ = a.AttachImage(ctx)
		case "del":
			_ = a.DeleteFinding(ctx)
		case "sel":
			_ = a.ToggleSelect(ctx)
		case "selall":
			_ = a.ToggleSelectAll(ctx)
		case "delsel":
			_ = a.DeleteSelected(ctx)

		case "m", "mats":
			_ = a.ListMaterials(ctx)
		case "medit":
			_ = a.BeginMaterialEdit(ctx)
		case "mcancel":
			_ = a.CancelMaterialEdit(ctx)
		case "msave":
			_ = a.SaveMaterials(ctx)
		case "madd":
			_ = a.AddMaterial(ctx)
		case "mset":
			_ = a.EditMaterial(ctx)
		case "mdel":
			_ = a.RemoveMaterialRow(ctx)
		case "mclear":
			_ = a.ClearMaterials(ctx)
		case "msel":
			_ = a.ToggleMaterial(ctx)
		case "mselall":
			_ = a.ToggleMaterialAll(ctx)
		case "mdelsel":
			_ = a.DeleteSelectedMaterials(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
