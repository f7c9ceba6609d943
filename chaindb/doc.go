// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package chaindb is the typed layer of the chain database. WriteBatch stages
// the record mutations of one block as raw puts and deletes; ReadBatch turns
// typed lookups into raw keys and decodes the raw result back into typed
// slots. Both are executed by a db.DataBase.
package chaindb
