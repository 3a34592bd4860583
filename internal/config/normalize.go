package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTelegram()
	c.normalizeVinted()
	if err := c.normalizeWatch(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSearches()
	return nil
}

func (c *Config) normalizeTelegram() {
	c.Telegram.Token = strings.TrimSpace(c.Telegram.Token)
	if c.Telegram.Token == "" {
		if value, ok := lookupEnvAny("CHINE_TELEGRAM_TOKEN", "TOKEN"); ok {
			c.Telegram.Token = strings.TrimSpace(value)
		}
	}
	c.Telegram.ChatID = strings.TrimSpace(c.Telegram.ChatID)
	if c.Telegram.ChatID == "" {
		if value, ok := lookupEnvAny("CHINE_TELEGRAM_CHAT_ID", "CHAT_ID"); ok {
			c.Telegram.ChatID = strings.TrimSpace(value)
		}
	}
	if c.Telegram.RequestTimeout <= 0 {
		c.Telegram.RequestTimeout = defaultNotifyTimeoutSeconds
	}
}

func (c *Config) normalizeVinted() {
	c.Vinted.BaseURL = strings.TrimRight(strings.TrimSpace(c.Vinted.BaseURL), "/")
	if c.Vinted.BaseURL == "" {
		c.Vinted.BaseURL = defaultBaseURL
	}
	c.Vinted.Currency = strings.ToUpper(strings.TrimSpace(c.Vinted.Currency))
	if c.Vinted.Currency == "" {
		c.Vinted.Currency = defaultCurrency
	}
	if c.Vinted.RequestTimeout <= 0 {
		c.Vinted.RequestTimeout = defaultSearchTimeoutSeconds
	}
}

func (c *Config) normalizeWatch() error {
	if value, ok := os.LookupEnv("POLL_SECONDS"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("POLL_SECONDS: %w", err)
		}
		c.Watch.PollSeconds = parsed
	}
	if value, ok := os.LookupEnv("MAX_ITEM_AGE_MIN"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("MAX_ITEM_AGE_MIN: %w", err)
		}
		c.Watch.MaxItemAgeMinutes = parsed
	}
	if c.Watch.PerPage <= 0 {
		c.Watch.PerPage = defaultPerPage
	}

	var err error
	if strings.TrimSpace(c.Watch.StateDir) == "" {
		c.Watch.StateDir = defaultStateDir
	}
	if c.Watch.StateDir, err = expandPath(c.Watch.StateDir); err != nil {
		return fmt.Errorf("watch.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSearches() {
	for i := range c.Searches {
		c.Searches[i].Name = strings.TrimSpace(c.Searches[i].Name)
		c.Searches[i].Query = strings.TrimSpace(c.Searches[i].Query)
	}
}

func lookupEnvAny(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}
