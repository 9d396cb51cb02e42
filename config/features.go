package config

import "os"

type Features struct {
	PlanGatingEnabled    bool
	NotificationsEnabled bool
}

func LoadFeatures() Features {
	return Features{
		PlanGatingEnabled:    os.Getenv("PLAN_GATING_ENABLED") == "true",
		NotificationsEnabled: os.Getenv("NOTIFICATIONS_ENABLED") == "true",
	}
}
