package host

// Modifier bits in accelerator bindings.
const (
	ModCtrl  = 1
	ModAlt   = 2
	ModShift = 4
)

// Virtual key codes used in accelerator bindings.
const (
	VKBackspace = 0x08
	VKTab       = 0x09
	VKEnter     = 0x0D
	VKEscape    = 0x1B
	VKSpace     = 0x20
	VKPageUp    = 0x21
	VKPageDown  = 0x22
	VKEnd       = 0x23
	VKHome      = 0x24
	VKLeft      = 0x25
	VKUp        = 0x26
	VKRight     = 0x27
	VKDown      = 0x28
	VKInsert    = 0x2D
	VKDelete    = 0x2E
	VKF1        = 0x70
	VKF2        = 0x71
	VKF3        = 0x72
	VKF4        = 0x73
	VKF5        = 0x74
	VKF6        = 0x75
	VKF7        = 0x76
	VKF8        = 0x77
	VKF9        = 0x78
	VKF10       = 0x79
	VKF11       = 0x7A
	VKF12       = 0x7B
)
