// SPDX-License-Identifier: Apache-2.0

// Package client implements the headless sync agent runtime.
//
// It wires local storage, the server adapter, client services, and
// background synchronization into a single process lifecycle.
package client
