package usecase

import "time"

// SetNowForTest overrides the use case clock in tests.
func (u *OrderUseCase) SetNowForTest(now func() time.Time) { u.now = now }

// SetNewIDForTest overrides the use case ID generator in tests.
func (u *OrderUseCase) SetNewIDForTest(newID func() string) { u.newID = newID }
