package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and authenticates against the
// sheet store. On success the session token is installed on the gateway
// and the user name is remembered for the prompt.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.gw.Login(ctx, userName, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = userName
	fmt.Println("Success!")
	return nil
}

// Logout drops the session token and the in-memory user name. Any open
// document stays loaded for viewing.
func (a *App) Logout(ctx context.Context) error {
	a.gw.SetToken("")
	a.userName = ""
	return nil
}

// Root starts the interactive session: login first, then the REPL.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the PIR editor CLI (type 'help' for commands)")

	a.Login(ctx)

	if a.config.DocumentKey != "" {
		a.documentKey = a.config.DocumentKey
		if err := a.reload(ctx); err != nil {
			log.Printf("error opening %s: %v", a.documentKey, err)
			a.documentKey = ""
		}
	}

	runREPL(ctx, a, a.getStatus, newStdinScanner())
}
