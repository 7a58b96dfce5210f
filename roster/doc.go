// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster is the façade over the score store used by handlers and the
spin controller.

	svc := roster.NewService(store.New(conn, clock))

Add trims names and rejects blanks with models.ErrInvalidName; the store's
unique constraint reports models.ErrDuplicateName. Remove and Adjust report
models.ErrNotFound for unknown ids.

Award satisfies spin.Awarder: a settled spin calls it exactly once for the
winner.
*/
package roster
