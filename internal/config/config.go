package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Paintersrp/nt/internal/constants"
)

const (
	PickerFzf       = "fzf"
	PickerBuiltin   = "builtin"
	RendererPandoc  = "pandoc"
	RendererBuiltin = "builtin"
)

// Action names usable as KEYS entries.
const (
	ActionEdit    = "edit"
	ActionRender  = "render"
	ActionCreate  = "create"
	ActionFilter  = "filter"
	ActionShell   = "shell"
	ActionJournal = "journal"
	ActionAttach  = "attach"
	ActionYank    = "yank"
	ActionHelp    = "help"
	ActionExit    = "exit"
)

// DefaultKeys binds every session action to a picker key.
var DefaultKeys = map[string]string{
	ActionEdit:    "enter",
	ActionRender:  "ctrl-o",
	ActionCreate:  "ctrl-n",
	ActionFilter:  "ctrl-f",
	ActionShell:   "alt-s",
	ActionJournal: "alt-j",
	ActionAttach:  "alt-a",
	ActionYank:    "ctrl-y",
	ActionHelp:    "f1",
	ActionExit:    "ctrl-q",
}

// Config is built once at startup and passed to every component. Nothing
// mutates it after Load returns.
type Config struct {
	Home        string            `json:"HOME"`
	BaseDir     string            `json:"BASE_DIR"`
	NotesDir    string            `json:"NOTES_DIR"`
	JournalDir  string            `json:"JOURNAL_DIR"`
	AttachDir   string            `json:"ATTACH_DIR"`
	HistoryFile string            `json:"HISTORY_FILE"`
	HistorySize int               `json:"HISTORY_SIZE"`
	Editor      string            `json:"EDITOR"`
	Picker      string            `json:"PICKER"`
	PickerCmd   string            `json:"PICKER_CMD"`
	Previewer   string            `json:"PREVIEWER"`
	Renderer    string            `json:"RENDERER"`
	Converter   string            `json:"CONVERTER"`
	Opener      string            `json:"OPENER"`
	PickerOpts  []string          `json:"FZF_OPTS"`
	PickerBinds []string          `json:"FZF_BINDS"`
	PreviewOpts []string          `json:"BAT_OPTS"`
	Keys        map[string]string `json:"KEYS"`
}

// Tool is an external executable a command depends on.
type Tool struct {
	Role string
	Name string
}

// Load reads the optional config file under home, applies NT_* environment
// overrides and fills every unset value with its default. A leading ~ in a
// directory value resolves through go-homedir, like every other path nt
// expands.
func Load(home string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	values, err := readConfigFile(GetConfigPath(home))
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("failed to merge config file: %w", err)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	cfg, err := fromViper(v, home)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vim"
	}

	v.SetDefault("base_dir", "~/.notes")
	v.SetDefault("attach_dir", "~/Downloads")
	v.SetDefault("history_size", 1000)
	v.SetDefault("editor", editor)
	v.SetDefault("picker", PickerFzf)
	v.SetDefault("picker_cmd", "fzf")
	v.SetDefault("previewer", "bat")
	v.SetDefault("renderer", RendererPandoc)
	v.SetDefault("converter", "pandoc")
	v.SetDefault("fzf_opts", "--layout=reverse --height=100% --border")
	v.SetDefault("bat_opts", "--color=always --style=plain")
}

func readConfigFile(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]interface{}{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to check config file existence: %w", err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	values := make(map[string]interface{}, len(env))
	for key, value := range env {
		values[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return values, nil
}

func fromViper(v *viper.Viper, home string) (*Config, error) {
	keys, err := ParseKeys(v.GetString("keys"))
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]string, 4)
	for _, key := range []string{"base_dir", "notes_dir", "journal_dir", "attach_dir"} {
		dir, err := expandHome(v.GetString(key))
		if err != nil {
			return nil, err
		}
		dirs[key] = dir
	}

	base := dirs["base_dir"]
	notes := dirs["notes_dir"]
	if notes == "" {
		notes = filepath.Join(base, "notes")
	}

	journal := dirs["journal_dir"]
	if journal == "" {
		journal = filepath.Join(notes, "journal")
	}

	return &Config{
		Home:        home,
		BaseDir:     base,
		NotesDir:    notes,
		JournalDir:  journal,
		AttachDir:   dirs["attach_dir"],
		HistoryFile: filepath.Join(base, constants.HistoryFile),
		HistorySize: v.GetInt("history_size"),
		Editor:      strings.TrimSpace(v.GetString("editor")),
		Picker:      strings.ToLower(strings.TrimSpace(v.GetString("picker"))),
		PickerCmd:   strings.TrimSpace(v.GetString("picker_cmd")),
		Previewer:   strings.TrimSpace(v.GetString("previewer")),
		Renderer:    strings.ToLower(strings.TrimSpace(v.GetString("renderer"))),
		Converter:   strings.TrimSpace(v.GetString("converter")),
		Opener:      strings.TrimSpace(v.GetString("opener")),
		PickerOpts:  strings.Fields(v.GetString("fzf_opts")),
		PickerBinds: strings.Fields(v.GetString("fzf_binds")),
		PreviewOpts: strings.Fields(v.GetString("bat_opts")),
		Keys:        keys,
	}, nil
}

// ParseKeys overlays "action=key,action=key" pairs on DefaultKeys.
func ParseKeys(raw string) (map[string]string, error) {
	keys := make(map[string]string, len(DefaultKeys))
	for action, key := range DefaultKeys {
		keys[action] = key
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		action, key, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid key binding %q: expected action=key", pair)
		}

		action = strings.ToLower(strings.TrimSpace(action))
		if _, known := DefaultKeys[action]; !known {
			return nil, fmt.Errorf("invalid key binding %q: unknown action %q", pair, action)
		}
		keys[action] = strings.TrimSpace(key)
	}

	return keys, nil
}

// Validate checks the assembled configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseDir, validation.Required),
		validation.Field(&c.NotesDir, validation.Required),
		validation.Field(&c.JournalDir, validation.Required),
		validation.Field(&c.Editor, validation.Required),
		validation.Field(&c.HistorySize, validation.Required, validation.Min(1)),
		validation.Field(&c.Picker, validation.Required, validation.In(PickerFzf, PickerBuiltin)),
		validation.Field(&c.Renderer, validation.Required, validation.In(RendererPandoc, RendererBuiltin)),
		validation.Field(&c.PickerCmd, validation.When(c.Picker == PickerFzf, validation.Required)),
		validation.Field(&c.Previewer, validation.When(c.Picker == PickerFzf, validation.Required)),
		validation.Field(&c.Converter, validation.When(c.Renderer == RendererPandoc, validation.Required)),
		validation.Field(&c.Keys, validation.By(validateKeys)),
	)
}

func validateKeys(value interface{}) error {
	keys, _ := value.(map[string]string)
	seen := make(map[string]string, len(keys))

	actions := make([]string, 0, len(keys))
	for action := range keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		key := keys[action]
		if key == "" {
			return fmt.Errorf("action %q has no key", action)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("key %q is bound to both %q and %q", key, other, action)
		}
		seen[key] = action
	}
	return nil
}

// RequiredTools lists the executables the configured backends shell out to.
func (c *Config) RequiredTools() []Tool {
	var tools []Tool
	if c.Picker == PickerFzf {
		tools = append(tools,
			Tool{Role: "file previewer", Name: c.Previewer},
			Tool{Role: "fuzzy picker", Name: c.PickerCmd},
		)
	}
	if c.Renderer == RendererPandoc {
		tools = append(tools, Tool{Role: "document converter", Name: c.Converter})
	}
	if fields := strings.Fields(c.Editor); len(fields) > 0 {
		tools = append(tools, Tool{Role: "text editor", Name: fields[0]})
	}
	return tools
}

// AssetsDir is where embedded render assets are materialized.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.BaseDir, constants.AssetsDir)
}
