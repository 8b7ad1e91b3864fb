//go:build tinygo

package core

// yieldFromISR is a no-op on hardware: the interrupt controller performs the
// context switch when the handler returns, and the notification channel has
// already readied the waiting goroutine.
func yieldFromISR() {}
