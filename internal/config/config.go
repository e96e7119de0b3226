package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Backend         string   `mapstructure:"backend"`
	Package         string   `mapstructure:"package"`
	Suffix          string   `mapstructure:"suffix"`
	Imports         []string `mapstructure:"imports"`
	Debug           bool     `mapstructure:"debug"`
	CleanWhitespace bool     `mapstructure:"clean_whitespace"`
	Escape          string   `mapstructure:"escape"`
	Format          bool     `mapstructure:"format"`
	Shell           string   `mapstructure:"shell"`
	PostProcess     string   `mapstructure:"post_process"`
	ColorTrace      string   `mapstructure:"color_trace"`
	ColorWarn       string   `mapstructure:"color_warn"`
	ColorError      string   `mapstructure:"color_error"`
	ColorText       string   `mapstructure:"color_text"`
	ColorCode       string   `mapstructure:"color_code"`
	ColorExpr       string   `mapstructure:"color_expr"`
	ColorDirective  string   `mapstructure:"color_directive"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("backend", "go")           // go or rust
	viper.SetDefault("package", "")             // Defaults to the template's directory name
	viper.SetDefault("suffix", "")              // Defaults per backend, see GetSuffix
	viper.SetDefault("imports", []string{})     // Extra Go imports for code blocks
	viper.SetDefault("debug", false)            // Same as <#@ template debug="true" #>
	viper.SetDefault("clean_whitespace", false) // Same as <#@ template cleanws="true" #>
	viper.SetDefault("escape", "")              // Initial escape function
	viper.SetDefault("format", true)            // gofmt generated Go code
	viper.SetDefault("shell", "sh")             // Runs post_process
	viper.SetDefault("post_process", "")        // Command piped over generated code
	viper.SetDefault("color_trace", "8")        // Gray
	viper.SetDefault("color_warn", "3")         // Yellow
	viper.SetDefault("color_error", "1")        // Red
	viper.SetDefault("color_text", "7")         // White
	viper.SetDefault("color_code", "6")         // Cyan
	viper.SetDefault("color_expr", "2")         // Green
	viper.SetDefault("color_directive", "5")    // Magenta

	viper.SetConfigName("t4go")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "t4go"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("T4GO")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetBackend returns the code generation backend
func GetBackend() string {
	return viper.GetString("backend")
}

// GetPackage returns the Go package name for generated files
func GetPackage() string {
	return viper.GetString("package")
}

// GetSuffix returns the suffix appended to files generated by the named
// backend. backend is the resolved backend name, not the configured alias.
func GetSuffix(backend string) string {
	if s := viper.GetString("suffix"); s != "" {
		return s
	}
	if backend == "rust" {
		return ".rs"
	}
	return "_tt.go"
}

// GetImports returns extra imports for generated Go files
func GetImports() []string {
	return viper.GetStringSlice("imports")
}

// GetDebug returns whether templates start in debug mode
func GetDebug() bool {
	return viper.GetBool("debug")
}

// GetCleanWhitespace returns whether templates start with whitespace cleaning on
func GetCleanWhitespace() bool {
	return viper.GetBool("clean_whitespace")
}

// GetEscape returns the initial escape function name
func GetEscape() string {
	return viper.GetString("escape")
}

// GetFormat returns whether generated Go code is gofmt'ed
func GetFormat() bool {
	return viper.GetBool("format")
}

// GetShell returns the shell used to run post-processing commands
func GetShell() string {
	return viper.GetString("shell")
}

// GetPostProcess returns the command generated code is piped through
func GetPostProcess() string {
	return viper.GetString("post_process")
}

// GetColorTrace returns the color of trace output
func GetColorTrace() string {
	return viper.GetString("color_trace")
}

// GetColorWarn returns the color of warnings
func GetColorWarn() string {
	return viper.GetString("color_warn")
}

// GetColorError returns the color of errors
func GetColorError() string {
	return viper.GetString("color_error")
}

// GetColorText returns the color of text segments in the preview
func GetColorText() string {
	return viper.GetString("color_text")
}

// GetColorCode returns the color of code segments in the preview
func GetColorCode() string {
	return viper.GetString("color_code")
}

// GetColorExpr returns the color of expression segments in the preview
func GetColorExpr() string {
	return viper.GetString("color_expr")
}

// GetColorDirective returns the color of directive segments in the preview
func GetColorDirective() string {
	return viper.GetString("color_directive")
}
