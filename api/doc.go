// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Contract layer for hioload-sync. Declares the capability interfaces a
// mutual-exclusion primitive may satisfy (basic, try, timed, and their shared
// counterparts), the runtime capability probe, shared error values, and the
// debug introspection contract. Contains no implementations; concrete
// primitives live in package locks, dispatch logic in internal/lockops.
package api
