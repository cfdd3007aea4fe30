package app

import (
	"github.com/spf13/viper"
)

// ConfigureViper sets up viper with standard config file search paths.
// Config file: seedy.toml
// Search paths (in order): /etc/seedy, ~/.config/seedy, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("seedy")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc/seedy")
	v.AddConfigPath("$HOME/.config/seedy")
	v.AddConfigPath(".")
}
