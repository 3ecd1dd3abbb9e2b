package util

import (
	"strings"

	"github.com/ValentinKolb/hmap/lib/db"
	"github.com/ValentinKolb/hmap/lib/db/engines/chain"
	"github.com/ValentinKolb/hmap/lib/store"
	"github.com/ValentinKolb/hmap/lib/store/lstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// DefaultCapacity is the number of buckets used when no capacity is configured
	DefaultCapacity = 1024
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupTableFlags adds the flags shared by every command that creates a table
func SetupTableFlags(cmd *cobra.Command) {
	key := "capacity"
	cmd.PersistentFlags().Int(key, DefaultCapacity, WrapString("Number of buckets of the hash table. It is fixed for the lifetime of the table, the table never grows"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// InitConfig initializes configuration from .env files and environment variables.
// Every flag can be set as HMAP_<FLAG> (e.g. HMAP_CAPACITY=64).
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hmap")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetCapacity returns the configured number of buckets
func GetCapacity() int {
	return viper.GetInt("capacity")
}

// NewStore creates a local store on top of a chain table with the given capacity
func NewStore(capacity int) (store.IStore, error) {
	return lstore.NewLocalStore(func() (db.HashTable, error) {
		return chain.NewChainDB(&chain.DBOptions{Capacity: capacity})
	})
}
