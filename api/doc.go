// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the stable contracts of the hioload-smp library:
// the backend engine capability surface, the functor shapes accepted by
// the parallel-for entry points, and the shared error types.
//
// Engines live under engine/ and are selected through the process-wide
// registry; user code normally imports only the smp facade package.
package api
