// Package config loads runtime configuration for the taskdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config, JSON or YAML by
//     extension, read with cleanenv.
//  3. Environment: a .env file in the working directory is loaded first,
//     then TASKDESK_API_URL, TASKDESK_STATE, TASKDESK_TIMEOUT and
//     TASKDESK_LOG_LEVEL are read.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the task API
//	-d string   local state database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// Timeouts are Go durations ("15s") or whole seconds:
//
//	{
//	  "api_url": "http://localhost:5000",
//	  "state_path": "taskdesk.db",
//	  "request_timeout": "30s",
//	  "log_level": "info"
//	}
package config
