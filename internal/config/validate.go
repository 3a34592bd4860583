package config

import "fmt"

// Validate ensures the configuration is usable. Missing Telegram
// credentials are deliberately not an error: the watcher degrades to
// logging matches locally.
func (c *Config) Validate() error {
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateSearches()
}

func (c *Config) validateWatch() error {
	if c.Watch.PollSeconds < 10 {
		return fmt.Errorf("watch.poll_seconds must be at least 10, got %d", c.Watch.PollSeconds)
	}
	if c.Watch.MaxItemAgeMinutes < 0 {
		return fmt.Errorf("watch.max_item_age_minutes must not be negative, got %d", c.Watch.MaxItemAgeMinutes)
	}
	if c.Watch.PerPage < 1 || c.Watch.PerPage > 100 {
		return fmt.Errorf("watch.per_page must be between 1 and 100, got %d", c.Watch.PerPage)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}

func (c *Config) validateSearches() error {
	if len(c.Searches) == 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/chine/config.toml"
		}
		return fmt.Errorf("at least one [[searches]] block is required. Edit %s (create with 'chine config init')", defaultPath)
	}
	for i, search := range c.Searches {
		if search.Name == "" {
			return fmt.Errorf("searches[%d]: name must be set", i)
		}
		if search.Query == "" {
			return fmt.Errorf("searches[%d] (%s): query must be set", i, search.Name)
		}
		if search.MaxPrice != nil && *search.MaxPrice <= 0 {
			return fmt.Errorf("searches[%d] (%s): max_price must be positive when set", i, search.Name)
		}
		if search.MaxUnitPrice != nil && *search.MaxUnitPrice <= 0 {
			return fmt.Errorf("searches[%d] (%s): max_unit_price must be positive when set", i, search.Name)
		}
		if search.MinQuantity != nil && *search.MinQuantity < 1 {
			return fmt.Errorf("searches[%d] (%s): min_quantity must be at least 1 when set", i, search.Name)
		}
	}
	return nil
}
