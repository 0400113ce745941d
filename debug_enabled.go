// Copyright 2025 The promist Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build deferred_debug

package deferred

import (
	"log"

	"github.com/google/uuid"
)

func debugLog(id uuid.UUID, e debugEvent) {
	if id == uuid.Nil {
		log.Printf("deferred: %s", e)
		return
	}
	log.Printf("deferred: promise(%s): %s", id, e)
}
