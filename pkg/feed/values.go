/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package feed

import (
	"encoding/json"
	"fmt"
)

// JSONField extracts one top-level field of a flat JSON object and decodes it
// as T.
func JSONField[T any](field string) func(*Response) (T, error) {
	return func(r *Response) (T, error) {
		var zero T

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(r.Body, &obj); err != nil {
			return zero, fmt.Errorf("failed to decode response: %w", err)
		}

		raw, ok := obj[field]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrFieldMissing, field)
		}

		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return zero, fmt.Errorf("failed to decode field %s: %w", field, err)
		}

		return v, nil
	}
}

// JSONStrings extracts a JSON array of strings.
func JSONStrings(field string) func(*Response) ([]string, error) {
	return JSONField[[]string](field)
}

// Constant ignores the response and yields v.
func Constant[T any](v T) func(*Response) (T, error) {
	return func(*Response) (T, error) {
		return v, nil
	}
}

// StatusOK reports whether the response status is 2xx. Pair it with
// WithAnyStatus so non-2xx responses yield false rather than the failure value.
func StatusOK(r *Response) (bool, error) {
	return r.Successful(), nil
}
