package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "config.json", want: FormatJSON},
		{path: "/etc/dvwa/CONFIG.JSON", want: FormatJSON},
		{path: "config.yaml", want: FormatYAML},
		{path: "config.yml", want: FormatYAML},
		{path: "config.inc.php", wantErr: true},
		{path: "config", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   error
		wantKey   Key
	}{
		{
			name: "text values",
			overrides: map[string]string{
				"db_server":             "127.0.0.1",
				"recaptcha_public_key":  "6LdPublic",
				"recaptcha_private_key": "6LdPrivate",
			},
		},
		{
			name:      "non-ascii text",
			overrides: map[string]string{"db_password": "пароль✓"},
		},
		{
			name:      "invalid utf-8 in plain value",
			overrides: map[string]string{"db_server": "host\xff"},
			wantErr:   ErrInvalidValue,
			wantKey:   KeyDBServer,
		},
		{
			name:      "invalid utf-8 in secret",
			overrides: map[string]string{"db_password": "p\xffw0rd"},
			wantErr:   ErrInvalidValue,
			wantKey:   KeyDBPassword,
		},
	}

	for _, tt := range tests {
		for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				original, err := Load(tt.overrides)
				require.NoError(t, err)

				path := filepath.Join(t.TempDir(), name)
				err = WriteFile(path, original)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
					assert.Equal(t, string(tt.wantKey), ErrorKey(err))
					if IsSecret(tt.wantKey) {
						assert.NotContains(t, err.Error(), "w0rd")
					}
					_, statErr := os.Stat(path)
					assert.True(t, os.IsNotExist(statErr))
					return
				}
				require.NoError(t, err)

				values, err := ReadFile(path)
				require.NoError(t, err)
				assert.Len(t, values, len(keyTable))

				reloaded, err := Load(values)
				require.NoError(t, err)
				assert.True(t, original.Equal(reloaded))
				assert.Equal(t, original.Values(), reloaded.Values())
			})
		}
	}
}

func TestRoundTrip_KeepsTextualValues(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	data, err := Marshal(cfg, FormatYAML)
	require.NoError(t, err)

	values, err := Unmarshal(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "3306", values["db_port"])
	assert.Equal(t, "false", values["default_phpids_verbose"])
	assert.Equal(t, "", values["recaptcha_public_key"])
}

func TestWriteFile_Permissions(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, WriteFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"db_port": "3306"`)
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	err = WriteFile(filepath.Join(t.TempDir(), "config.ini"), cfg)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal_JSONRejectsNonText(t *testing.T) {
	_, err := Unmarshal([]byte(`{"db_port": 3306}`), FormatJSON)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestUnmarshal_YAMLScalarsBecomeText(t *testing.T) {
	values, err := Unmarshal([]byte("db_port: 3306\ndefault_phpids_verbose: true\n"), FormatYAML)

	require.NoError(t, err)
	assert.Equal(t, "3306", values["db_port"])
	assert.Equal(t, "true", values["default_phpids_verbose"])
}

func TestUnmarshal_YAMLRejectsNested(t *testing.T) {
	_, err := Unmarshal([]byte("db:\n  server: localhost\n"), FormatYAML)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding yaml configs")
}

func TestUnmarshal_RejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr error
		wantKey Key
	}{
		{name: "json null", data: `{"db_password": null}`, format: FormatJSON, wantErr: ErrInvalidValue, wantKey: KeyDBPassword},
		{name: "json repeated key", data: `{"db_user": "a", "db_user": "b"}`, format: FormatJSON, wantErr: ErrInvalidKey, wantKey: KeyDBUser},
		{name: "json top-level array", data: `["db_user"]`, format: FormatJSON},
		{name: "json truncated", data: `{"db_user": "a"`, format: FormatJSON},
		{name: "yaml tilde", data: "db_password: ~\n", format: FormatYAML, wantErr: ErrInvalidValue, wantKey: KeyDBPassword},
		{name: "yaml null literal", data: "db_server: null\n", format: FormatYAML, wantErr: ErrInvalidValue, wantKey: KeyDBServer},
		{name: "yaml empty value", data: "db_user:\n", format: FormatYAML, wantErr: ErrInvalidValue, wantKey: KeyDBUser},
		{name: "yaml nested", data: "db_server:\n  host: localhost\n", format: FormatYAML, wantErr: ErrInvalidValue, wantKey: KeyDBServer},
		{name: "yaml repeated key", data: "db_user: a\ndb_user: b\n", format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := Unmarshal([]byte(tt.data), tt.format)

			require.Error(t, err)
			assert.Nil(t, values)
			assert.Contains(t, err.Error(), "error decoding "+string(tt.format)+" configs")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, string(tt.wantKey), ErrorKey(err))
			}
		})
	}
}

func TestUnmarshal_QuotedEmptyIsText(t *testing.T) {
	values, err := Unmarshal([]byte("recaptcha_public_key: \"\"\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"recaptcha_public_key": ""}, values)

	values, err = Unmarshal([]byte(`{"recaptcha_public_key": ""}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"recaptcha_public_key": ""}, values)
}

func TestUnmarshal_UnsupportedFormat(t *testing.T) {
	_, err := Unmarshal([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadFile_NotFound(t *testing.T) {
	values, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Nil(t, values)
	assert.Contains(t, err.Error(), "error reading a config file")
}
