package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"smartbiz-backend/internal/auth"
	"smartbiz-backend/internal/config"
	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/sheets"
)

// Prepares a spreadsheet for the backend: writes missing header rows and
// replaces plaintext passwords left in the credentials sheet with bcrypt
// hashes.
func main() {
	writeHeaders := flag.Bool("headers", false, "write header rows to sheets that have none")
	hashPasswords := flag.Bool("hash-passwords", false, "hash plaintext passwords in the credentials sheet")
	flag.Parse()

	if !*writeHeaders && !*hashPasswords {
		flag.Usage()
		return
	}

	fmt.Println("========================================")
	fmt.Println("   Prepare Spreadsheet")
	fmt.Println("========================================")
	fmt.Println()
	if *hashPasswords {
		fmt.Println("⚠️  Plaintext passwords will be overwritten with hashes.")
	}
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return
	}

	cfg, err := config.Read("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	ctx := context.Background()
	api, err := sheets.NewGoogleClient(ctx, sheets.Options{
		SpreadsheetID:       cfg.Sheets.SpreadsheetID,
		CredentialsFile:     cfg.Sheets.CredentialsFile,
		CredentialsJSON:     cfg.Sheets.CredentialsJSON,
		ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
		PrivateKey:          cfg.Sheets.PrivateKey,
		ValueRenderOption:   cfg.Sheets.ValueRenderOption,
	})
	if err != nil {
		log.Fatalf("Unable to connect to spreadsheet: %v\n", err)
	}
	layout := repositories.LayoutFromConfig(cfg)

	if *writeHeaders {
		for sheet, rows := range layout.Headers() {
			if err := ensureHeaders(ctx, api, sheet, rows); err != nil {
				log.Fatalf("Failed to prepare %s: %v\n", sheet, err)
			}
		}
	}

	if *hashPasswords {
		store := repositories.NewSpreadsheetStore(api, layout, nil)
		creds, err := store.Credentials.List(ctx)
		if err != nil {
			log.Fatalf("Failed to read credentials: %v\n", err)
		}

		hashed := 0
		for _, c := range creds {
			if c.PasswordHash == "" || strings.HasPrefix(c.PasswordHash, "$2") {
				continue
			}
			hash, err := auth.HashPassword(c.PasswordHash)
			if err != nil {
				log.Fatalf("Failed to hash password for %s: %v\n", c.Email, err)
			}
			if err := store.Credentials.UpdatePassword(ctx, c.Email, hash); err != nil {
				log.Fatalf("Failed to update %s: %v\n", c.Email, err)
			}
			hashed++
		}
		fmt.Printf("  ✓ Hashed %d of %d passwords\n", hashed, len(creds))
	}

	fmt.Println()
	fmt.Println("✅ Spreadsheet is ready!")
}

// ensureHeaders writes the header block unless the last header row already
// has content.
func ensureHeaders(ctx context.Context, api sheets.ValuesAPI, sheet string, rows [][]interface{}) error {
	last := len(rows)
	width := len(rows[last-1])

	existing, err := api.Get(ctx, sheets.RowRange(sheet, last, width))
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("  - %s already has headers\n", sheet)
		return nil
	}

	for i, row := range rows {
		if row == nil {
			continue
		}
		if err := api.Update(ctx, sheets.RowRange(sheet, i+1, width), [][]interface{}{row}); err != nil {
			return err
		}
	}
	fmt.Printf("  ✓ Wrote headers to %s\n", sheet)
	return nil
}
