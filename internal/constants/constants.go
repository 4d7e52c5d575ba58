package constants

const (
	Version    = `0.1.0`
	ConfigFile = `config`
	ConfigDir  = `.config/nt`
	EnvPrefix  = `NT`

	NoteExt       = `.md`
	RenderedExt   = `.html`
	AttachSuffix  = `_attachments`
	HistoryFile   = `search_history`
	AssetsDir     = `assets`
	TemplatesDir  = `templates`
	JournalLayout = `2006-01-02`
	JournalTitle  = `Monday, 02 January 2006`
	ShellPrompt   = `(nt) \w $ `
	MatchAll      = `.*`
)

// ImageExts lists the extensions that are linked inline as images when attached.
var ImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".svg":  true,
	".webp": true,
}
