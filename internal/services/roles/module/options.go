package module

import "studyhall/internal/platform/config"

// Options holds configuration settings for the roles module
type Options struct {
	TAGroup string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("ROLES_")
	return Options{
		TAGroup: rf.MayString("TA_GROUP", "Teaching Assistants"),
	}
}
