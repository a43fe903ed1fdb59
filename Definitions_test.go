/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bijac

import (
	"strings"
	"testing"
)

func TestInvariantViolationWrapsMessage(t *testing.T) {
	err := InvariantViolation("range collapsed to %d", 0)

	if !strings.Contains(err.Error(), "bijac: invariant violation:") {
		t.Errorf("error %q missing the invariant-violation prefix", err.Error())
	}

	if !strings.Contains(err.Error(), "range collapsed to 0") {
		t.Errorf("error %q missing the formatted detail", err.Error())
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := map[int]string{
		ErrInputOpen:  "ErrInputOpen",
		ErrOutputOpen: "ErrOutputOpen",
		ErrFile:       "ErrFile",
		ErrUsage:      "ErrUsage",
	}

	if len(codes) != 4 {
		t.Errorf("exit codes are not pairwise distinct: %v", codes)
	}
}
