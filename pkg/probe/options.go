// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package probe

// WithReadinessCheck is an option to gate the readiness endpoint on check,
// typically the readiness of a database.
func WithReadinessCheck(check func() bool) Option {
	return &readinessOption{check}
}

type readinessOption struct{ check func() bool }

func (o *readinessOption) SetOption(s *Server) { s.readinessCheck = o.check }
