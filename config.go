// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"log/slog"
	"os"
	"strconv"
)

var (
	cacheTables = calcCacheTables()
	logLevel    = calcLogLevel()
)

func calcCacheTables() int {
	if e := os.Getenv("HUFFCACHE"); e != "" {
		n, err := strconv.Atoi(e)
		if err != nil || n < 1 {
			panic("malformed HUFFCACHE environment variable, should be a positive number of tables: " + e)
		}
		return n
	}
	return 64
}

func calcLogLevel() slog.Level {
	if e := os.Getenv("HUFFLOG"); e != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(e)); err != nil {
			panic("malformed HUFFLOG environment variable, should be debug, info, warn or error: " + e)
		}
		return l
	}
	return slog.LevelWarn
}
