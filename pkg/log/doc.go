// Package log is the logging port of the Premium client.
//
// The client logs through the Logger interface so callers can plug in
// whatever they already use. Two implementations ship with the package: a
// zerolog adapter and a Logger that drops everything, which is what a
// client gets when no logger is configured.
//
//	logger, err := log.New(os.Stderr, "debug")
//	if err != nil {
//	    return err
//	}
//	c, err := client.New(cfg, client.WithLogger(logger))
package log
