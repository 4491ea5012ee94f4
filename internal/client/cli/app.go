package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/skyworks-mro/pirdesk/internal/client/config"
	"github.com/skyworks-mro/pirdesk/internal/client/gateway"
	"github.com/skyworks-mro/pirdesk/internal/collection"
	"github.com/skyworks-mro/pirdesk/internal/common"
	"github.com/skyworks-mro/pirdesk/internal/editor"
	"github.com/skyworks-mro/pirdesk/internal/pir"
)

// App holds the editor's entire client-side state: the open document,
// the finding and material collections with their edit sessions, and the
// gateway to the sheet store. All state is mutated from the single REPL
// goroutine.
type App struct {
	config *config.Config
	gw     gateway.Gateway
	reader *bufio.Reader

	userName string

	documentKey  string
	info         pir.GeneralInfo
	availability []string

	findings       *collection.Controller[pir.Finding]
	findingSession *editor.Session[pir.Finding]

	// activeFinding is the index of the finding whose materials are being
	// edited; -1 means none is chosen and material editing is gated off.
	activeFinding     int
	materials         *collection.Controller[pir.Material]
	materialSession   *editor.Session[pir.Material]
	snapshotMaterials map[string][]pir.Material
}

// NewApp builds an App talking to the configured sheet store endpoint.
func NewApp(c *config.Config) *App {
	return newAppWithGateway(c, gateway.NewHTTPGateway(c.EndpointURL, c.RequestTimeout))
}

func newAppWithGateway(c *config.Config, gw gateway.Gateway) *App {
	a := &App{
		config:        c,
		gw:            gw,
		reader:        bufio.NewReader(os.Stdin),
		activeFinding: -1,
	}

	a.findings = collection.New(
		func() pir.Finding { return pir.Finding{} },
		func(rec *pir.Finding, pos int) { rec.FindingNo = pir.FindingLabel(a.info.ParentKey(), pos) },
	)
	a.findingSession = editor.NewSession(a.findings, pir.Finding.Significant, a.requireDocument)

	a.materials = collection.New(func() pir.Material { return pir.Material{} }, nil)
	a.materialSession = editor.NewSession(a.materials, pir.Material.Significant, a.requireActiveFinding)

	return a
}

func (a *App) isLoggedIn() bool { return a.userName != "" }

func (a *App) requireDocument() error {
	if a.documentKey == "" {
		return common.ErrNoDocumentKey
	}
	return nil
}

func (a *App) requireActiveFinding() error {
	if err := a.requireDocument(); err != nil {
		return err
	}
	if a.activeFinding < 0 {
		return common.ErrNoActiveFinding
	}
	return nil
}

// getStatus composes the REPL prompt decoration from the logged-in user,
// the open document and the current edit mode.
func (a *App) getStatus() string {
	parts := []string{}
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.documentKey != "" {
		parts = append(parts, a.info.ParentKey())
	}
	if a.findingSession.Editing() || a.materialSession.Editing() {
		parts = append(parts, "editing")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// applySnapshot replaces every piece of document state with the
// authoritative server response. Local edits do not survive this; a
// successful save is always followed by it.
func (a *App) applySnapshot(snap *gateway.Snapshot) {
	a.info = snap.Info
	a.availability = snap.AvailabilityOptions
	a.snapshotMaterials = snap.MaterialsByFinding

	a.findings.Load(snap.Findings)
	if a.activeFinding >= a.findings.Len() {
		a.activeFinding = -1
	}
	a.loadMaterialsForActive()
}

// loadMaterialsForActive rebuilds the material collection for the active
// finding from the last snapshot.
func (a *App) loadMaterialsForActive() {
	if a.activeFinding < 0 {
		a.materials.Clear()
		return
	}
	f, ok := a.findings.At(a.activeFinding)
	if !ok {
		a.materials.Clear()
		return
	}
	a.materials.Load(a.snapshotMaterials[f.FindingNo])
}

// reload fetches the authoritative snapshot and applies it.
func (a *App) reload(ctx context.Context) error {
	snap, err := a.gw.Load(ctx, a.documentKey)
	if err != nil {
		return err
	}
	a.applySnapshot(snap)
	return nil
}

func newStdinScanner() *bufio.Scanner {
	return bufio.NewScanner(os.Stdin)
}

// promptIndex asks for a 1-based position and converts it to a 0-based
// index, validated against the given length.
func (a *App) promptIndex(prompt string, length int) (int, error) {
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > length {
		return 0, fmt.Errorf("expected a number between 1 and %d", length)
	}
	return n - 1, nil
}

// promptField asks for a field value, offering the current one; an empty
// answer keeps it.
func (a *App) promptField(name, current string) (string, error) {
	text, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] (Enter keeps current)", name, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

// promptMultilineField is promptField for narrative fields that can span
// several lines. Finishing without typing anything keeps the current
// value.
func (a *App) promptMultilineField(name, current string) (string, error) {
	text, err := GetMultiline(a.reader, fmt.Sprintf("%s [%s] (empty input keeps current)", name, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}
