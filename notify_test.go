package main

import "testing"

func TestNewNotifierDisabledWithoutCredentials(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{SlackBotToken: "xoxb-test"},
		{SlackChannelID: "C0TEST"},
	} {
		n := NewNotifier(cfg)
		if n.api != nil {
			t.Fatalf("notifier should be disabled for cfg %+v", cfg)
		}
		// Posting on a disabled notifier must be a no-op.
		n.Post("ignored")
	}
}

func TestNotifyHTTPClientTimeout(t *testing.T) {
	if notifyHTTPClient.Timeout <= 0 {
		t.Fatalf("notify client timeout must be set, got %s", notifyHTTPClient.Timeout)
	}
}
