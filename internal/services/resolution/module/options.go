package module

import "studyhall/internal/platform/config"

// Options holds configuration settings for the resolution module
type Options struct {
	FeedbackCID int64
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("RESOLUTION_")
	return Options{
		FeedbackCID: rf.MayInt64("FEEDBACK_CID", 0),
	}
}
