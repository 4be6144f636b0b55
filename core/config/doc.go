// Package config provides configuration management for DashMD.
//
// It utilizes Viper for layering command-line flags, environment variables
// (prefixed DASHMD_), an optional .env file and the defaults declared in
// struct tags.
//
// # Configuration Structure
//
// The Config struct is the single configuration record of a launch:
//   - Server: port and browser opening
//   - Dashboard: default directory and update rate forwarded to the dashboard
//   - Log: level (CRITICAL, ERROR, WARNING, INFO, DEBUG) and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
