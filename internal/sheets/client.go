package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValuesAPI is the range-based value access the store needs from the remote
// spreadsheet. Values are rectangular rows of cells (strings, numbers or nil).
type ValuesAPI interface {
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Append(ctx context.Context, rng string, rows [][]interface{}) error
	Update(ctx context.Context, rng string, rows [][]interface{}) error
	Clear(ctx context.Context, rng string) error
}

// Options configures a GoogleClient.
type Options struct {
	SpreadsheetID string

	// One of the credential sources below must be set.
	CredentialsFile     string
	CredentialsJSON     string
	ServiceAccountEmail string
	PrivateKey          string

	// ValueRenderOption is FORMATTED_VALUE or UNFORMATTED_VALUE.
	ValueRenderOption string

	// ClientOptions are appended after the credential options, e.g. to point
	// the client at another endpoint.
	ClientOptions []option.ClientOption
}

// valueInputOption stores values exactly as sent. USER_ENTERED would turn
// "01711000000" into a number and "2024-05-01" into a date serial, and would
// evaluate text starting with "=".
const valueInputOption = "RAW"

// GoogleClient implements ValuesAPI against the Google Sheets v4 API.
type GoogleClient struct {
	svc           *gsheets.Service
	spreadsheetID string
	renderOption  string
}

// NewGoogleClient builds an authenticated Sheets client.
func NewGoogleClient(ctx context.Context, opts Options) (*GoogleClient, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	switch {
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	case opts.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.CredentialsJSON)))
	case opts.ServiceAccountEmail != "" && opts.PrivateKey != "":
		// Keys pasted into env files usually carry literal \n sequences.
		key := strings.ReplaceAll(opts.PrivateKey, `\n`, "\n")
		jwtCfg := &jwt.Config{
			Email:      opts.ServiceAccountEmail,
			PrivateKey: []byte(key),
			Scopes:     []string{gsheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		clientOpts = append(clientOpts, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	default:
		log.Printf("[Sheets] No explicit credentials configured, using application default credentials")
	}

	clientOpts = append(clientOpts, opts.ClientOptions...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	render := opts.ValueRenderOption
	if render == "" {
		render = "UNFORMATTED_VALUE"
	}

	return &GoogleClient{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		renderOption:  render,
	}, nil
}

func (c *GoogleClient) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption(c.renderOption).
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *GoogleClient) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheets.ValueRange{Values: rows}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *GoogleClient) Update(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheets.ValueRange{Values: rows}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return err
}

func (c *GoogleClient) Clear(ctx context.Context, rng string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}
