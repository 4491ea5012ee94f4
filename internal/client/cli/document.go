package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Open prompts for a document key and loads its authoritative snapshot.
// An empty answer falls back to the configured default key.
func (a *App) Open(ctx context.Context) error {
	key, err := GetSimpleText(a.reader, "Enter document key", os.Stdout)
	if err != nil {
		return err
	}
	if key == "" {
		key = a.config.DocumentKey
	}

	prev := a.documentKey
	a.documentKey = key
	a.activeFinding = -1
	if err := a.reload(ctx); err != nil {
		log.Printf("error: %v", err)
		a.documentKey = prev
		return err
	}

	fmt.Printf("Opened %s: %d finding(s)\n", a.info.ParentKey(), a.findings.Len())
	return nil
}

// BeginEdit switches the finding collection into edit mode.
func (a *App) BeginEdit(ctx context.Context) error {
	if err := a.findingSession.BeginEdit(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Editing findings. Save with 'save', discard selection with 'cancel'.")
	return nil
}

// CancelEdit leaves finding edit mode without saving. Field edits made so
// far stay in memory until the next reload.
func (a *App) CancelEdit(ctx context.Context) error {
	a.findingSession.Cancel()
	return nil
}

// Save performs the full-replace save of the info header and every
// finding, then reloads the authoritative state.
//
// Failure handling is deliberately asymmetric: a transport error or an
// application-level rejection leaves edit mode and all local records
// untouched so nothing the user typed is lost; only a confirmed success
// completes the session and triggers the reload.
func (a *App) Save(ctx context.Context) error {
	if !a.findingSession.Editing() {
		fmt.Println("Nothing to save: not in edit mode (use 'edit').")
		return nil
	}

	res, err := a.gw.SaveFindings(ctx, a.documentKey, a.info, a.findings.Records())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("save rejected: %s", res.Message)
		return nil
	}

	a.findingSession.CompleteSave()
	if err := a.reload(ctx); err != nil {
		log.Printf("error reloading after save: %v", err)
		return err
	}
	fmt.Println("Saved.")
	return nil
}

// GenerateDoc asks the store to render the report document and prints the
// resulting URL.
func (a *App) GenerateDoc(ctx context.Context) error {
	if err := a.requireDocument(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	res, err := a.gw.GenerateDoc(ctx, a.documentKey)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !res.OK {
		log.Printf("document generation failed: %s", res.Message)
		return nil
	}
	fmt.Printf("Document ready: %s\n", res.DocURL)
	return nil
}
