package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfapi/internal/constants"
)

const invoiceListBody = `{
	"itemCount": 1,
	"pageCount": 3,
	"page": 1,
	"perPage": 1,
	"items": [
		{"Invoice": {"id": 12, "invoice_no_formatted": "2024001", "name": "Acme s.r.o.", "amount": "120.00", "status": "1"}}
	]
}`

type apiStub struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

// newAPIStub serves body for every request and records the escaped paths.
func newAPIStub(t *testing.T, contentType, body string) *apiStub {
	t.Helper()

	stub := &apiStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.paths = append(stub.paths, r.URL.EscapedPath())
		stub.mu.Unlock()

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(stub.Close)

	return stub
}

func (s *apiStub) lastPath(t *testing.T) string {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.paths, "no request reached the server")

	return s.paths[len(s.paths)-1]
}

// configureCredentials points viper at server and resets it after the test.
func configureCredentials(t *testing.T, serverURL, output string) {
	t.Helper()
	t.Cleanup(viper.Reset)

	viper.Set("email", "api@example.com")
	viper.Set("key", "test-key")
	viper.Set("company_id", 7)
	viper.Set("module", "CLI tests")
	viper.Set("base_url", serverURL)
	viper.Set("output", output)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestInvoicesList_Table(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, invoiceListBody)
	configureCredentials(t, stub.URL, OutputFormatTable)

	output, err := execute(t, NewInvoicesCommand(), "list", "--status", "1,2", "--per-page", "1", "--search", "Acme")
	require.NoError(t, err)

	assert.Contains(t, output, "2024001")
	assert.Contains(t, output, "Acme s.r.o.")
	assert.Contains(t, output, "Showing page 1 of 3")

	path := stub.lastPath(t)
	assert.True(t, strings.HasPrefix(path, "/invoices/index.json/"), path)
	assert.Contains(t, path, "listinfo%3A1")
	assert.Contains(t, path, "per_page%3A1")
	assert.Contains(t, path, "status%3A1%7C2")
	assert.Contains(t, path, "search%3AQWNtZQ%3D%3D")
}

func TestInvoicesList_JSON(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, invoiceListBody)
	configureCredentials(t, stub.URL, OutputFormatJSON)

	output, err := execute(t, NewInvoicesCommand(), "list")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.InDelta(t, 3, decoded["pageCount"], 0)
}

func TestInvoicesList_InvalidFlagsSendNothing(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, invoiceListBody)
	configureCredentials(t, stub.URL, OutputFormatTable)

	_, err := execute(t, NewInvoicesCommand(), "list", "--type", "bogus")
	require.Error(t, err)

	_, err = execute(t, NewInvoicesCommand(), "list", "--amount-from", "ten")
	require.Error(t, err)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Empty(t, stub.paths)
}

func TestInvoicesGet_ErrorFlag(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{"error":1,"error_message":"Invoice not found"}`)
	configureCredentials(t, stub.URL, OutputFormatTable)

	_, err := execute(t, NewInvoicesCommand(), "get", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get invoice")
	assert.Equal(t, "/invoices/view/12.json", stub.lastPath(t))
}

func TestInvoicesPDF_ToFile(t *testing.T) {
	content := "%PDF-1.4 invoice"
	stub := newAPIStub(t, "application/pdf", content)
	configureCredentials(t, stub.URL, OutputFormatTable)

	path := filepath.Join(t.TempDir(), "invoice.pdf")

	_, err := execute(t, NewInvoicesCommand(), "pdf", "12", "--language", "eng", "--file", path)
	require.NoError(t, err)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
	assert.Equal(t, "/eng/invoices/pdf/12", stub.lastPath(t))
}

func TestTagsDelete(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{"error":0,"message":"deleted"}`)
	configureCredentials(t, stub.URL, OutputFormatTable)

	output, err := execute(t, NewTagsCommand(), "delete", "5")
	require.NoError(t, err)
	assert.Equal(t, "Deleted tag 5\n", output)
	assert.Equal(t, "/tags/delete/5", stub.lastPath(t))
}

func TestCountries_YAML(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{"1":"Slovensko","2":"Česko"}`)
	configureCredentials(t, stub.URL, OutputFormatYAML)

	output, err := execute(t, NewCountriesCommand())
	require.NoError(t, err)
	assert.Contains(t, output, `"1": Slovensko`)
	assert.Equal(t, "/countries", stub.lastPath(t))
}

func TestExportsCreate_RequiresInvoices(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{}`)
	configureCredentials(t, stub.URL, OutputFormatTable)

	_, err := execute(t, NewExportsCommand(), "create")
	require.ErrorIs(t, err, constants.ErrNoInvoiceIDs)

	_, err = execute(t, NewExportsCommand(), "create", "1", "--format", "docx")
	require.Error(t, err)
}

func TestCreateClient_NoCredentials(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := execute(t, NewTagsCommand(), "list")
	require.ErrorIs(t, err, constants.ErrNoCredentials)
}

func TestCreateClient_EnvFile(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{"1":"Slovensko"}`)
	t.Cleanup(viper.Reset)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"SFAPI_EMAIL=api@example.com",
		"SFAPI_KEY=test-key",
		"SFAPI_COMPANY_ID=7",
		"SFAPI_MODULE=CLI",
		"SFAPI_APP_TITLE=Tests",
		"SFAPI_BASE_URL=" + stub.URL,
	}, "\n")
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	viper.Set("env_file", envFile)

	_, err := execute(t, NewCountriesCommand())
	require.NoError(t, err)
	assert.Equal(t, "/countries", stub.lastPath(t))
}

func TestCreateClient_UnreachableNATSIsNotFatal(t *testing.T) {
	stub := newAPIStub(t, constants.ContentTypeJSON, `{"1":"Slovensko"}`)
	configureCredentials(t, stub.URL, OutputFormatTable)
	viper.Set("nats.url", "nats://127.0.0.1:1")

	_, err := execute(t, NewCountriesCommand())
	require.NoError(t, err)
}

func TestConfigSetAndShow(t *testing.T) {
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	_, err := execute(t, NewConfigCommand(), "set", "email", "api@example.com")
	require.NoError(t, err)

	output, err := execute(t, NewConfigCommand(), "set", "key", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Set key to ***\n", output)

	_, err = execute(t, NewConfigCommand(), "set", "company_id", "abc")
	require.ErrorIs(t, err, constants.ErrInvalidCompanyID)

	_, err = execute(t, NewConfigCommand(), "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	saved, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "email: api@example.com")
	assert.Contains(t, string(saved), "key: secret")

	viper.Set("output", OutputFormatJSON)

	output, err = execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, output, `"key": "***"`)
	assert.NotContains(t, output, "secret")
}
