package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

var namedKeys = map[glfw.Key]gpucontext.Key{
	glfw.KeyEscape:       gpucontext.KeyEscape,
	glfw.KeyTab:          gpucontext.KeyTab,
	glfw.KeyBackspace:    gpucontext.KeyBackspace,
	glfw.KeyEnter:        gpucontext.KeyEnter,
	glfw.KeySpace:        gpucontext.KeySpace,
	glfw.KeyInsert:       gpucontext.KeyInsert,
	glfw.KeyDelete:       gpucontext.KeyDelete,
	glfw.KeyHome:         gpucontext.KeyHome,
	glfw.KeyEnd:          gpucontext.KeyEnd,
	glfw.KeyPageUp:       gpucontext.KeyPageUp,
	glfw.KeyPageDown:     gpucontext.KeyPageDown,
	glfw.KeyLeft:         gpucontext.KeyLeft,
	glfw.KeyRight:        gpucontext.KeyRight,
	glfw.KeyUp:           gpucontext.KeyUp,
	glfw.KeyDown:         gpucontext.KeyDown,
	glfw.KeyLeftShift:    gpucontext.KeyLeftShift,
	glfw.KeyRightShift:   gpucontext.KeyRightShift,
	glfw.KeyLeftControl:  gpucontext.KeyLeftControl,
	glfw.KeyRightControl: gpucontext.KeyRightControl,
	glfw.KeyLeftAlt:      gpucontext.KeyLeftAlt,
	glfw.KeyRightAlt:     gpucontext.KeyRightAlt,
	glfw.KeyLeftSuper:    gpucontext.KeyLeftSuper,
	glfw.KeyRightSuper:   gpucontext.KeyRightSuper,
	glfw.KeyMinus:        gpucontext.KeyMinus,
	glfw.KeyEqual:        gpucontext.KeyEqual,
	glfw.KeyLeftBracket:  gpucontext.KeyLeftBracket,
	glfw.KeyRightBracket: gpucontext.KeyRightBracket,
	glfw.KeyBackslash:    gpucontext.KeyBackslash,
	glfw.KeySemicolon:    gpucontext.KeySemicolon,
	glfw.KeyApostrophe:   gpucontext.KeyApostrophe,
	glfw.KeyGraveAccent:  gpucontext.KeyGrave,
	glfw.KeyComma:        gpucontext.KeyComma,
	glfw.KeyPeriod:       gpucontext.KeyPeriod,
	glfw.KeySlash:        gpucontext.KeySlash,
	glfw.KeyKPDecimal:    gpucontext.KeyNumpadDecimal,
	glfw.KeyKPDivide:     gpucontext.KeyNumpadDivide,
	glfw.KeyKPMultiply:   gpucontext.KeyNumpadMultiply,
	glfw.KeyKPSubtract:   gpucontext.KeyNumpadSubtract,
	glfw.KeyKPAdd:        gpucontext.KeyNumpadAdd,
	glfw.KeyKPEnter:      gpucontext.KeyNumpadEnter,
	glfw.KeyCapsLock:     gpucontext.KeyCapsLock,
	glfw.KeyScrollLock:   gpucontext.KeyScrollLock,
	glfw.KeyNumLock:      gpucontext.KeyNumLock,
	glfw.KeyPrintScreen:  gpucontext.KeyPrintScreen,
	glfw.KeyPause:        gpucontext.KeyPause,
}

// translateKey maps a GLFW key to the gpucontext vocabulary. Letters,
// digits, function keys and keypad digits are contiguous in both.
func translateKey(k glfw.Key) gpucontext.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return gpucontext.KeyA + gpucontext.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return gpucontext.Key0 + gpucontext.Key(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return gpucontext.KeyF1 + gpucontext.Key(k-glfw.KeyF1)
	case k >= glfw.KeyKP0 && k <= glfw.KeyKP9:
		return gpucontext.KeyNumpad0 + gpucontext.Key(k-glfw.KeyKP0)
	}
	if key, ok := namedKeys[k]; ok {
		return key
	}
	return gpucontext.KeyUnknown
}

func translateButton(b glfw.MouseButton) (gpucontext.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return gpucontext.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return gpucontext.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return gpucontext.MouseButtonMiddle, true
	case glfw.MouseButton4:
		return gpucontext.MouseButton4, true
	case glfw.MouseButton5:
		return gpucontext.MouseButton5, true
	}
	return 0, false
}

func translateMods(m glfw.ModifierKey) gpucontext.Modifiers {
	var mods gpucontext.Modifiers
	if m&glfw.ModShift != 0 {
		mods |= gpucontext.ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= gpucontext.ModControl
	}
	if m&glfw.ModAlt != 0 {
		mods |= gpucontext.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= gpucontext.ModSuper
	}
	if m&glfw.ModCapsLock != 0 {
		mods |= gpucontext.ModCapsLock
	}
	if m&glfw.ModNumLock != 0 {
		mods |= gpucontext.ModNumLock
	}
	return mods
}

// standardCursor maps a cursor shape to the closest GLFW 3.3 standard
// cursor. Shapes GLFW 3.3 lacks fall back to the arrow.
func standardCursor(shape gpucontext.CursorShape) glfw.StandardCursor {
	switch shape {
	case gpucontext.CursorPointer, gpucontext.CursorMove:
		return glfw.HandCursor
	case gpucontext.CursorText:
		return glfw.IBeamCursor
	case gpucontext.CursorCrosshair:
		return glfw.CrosshairCursor
	case gpucontext.CursorResizeNS:
		return glfw.VResizeCursor
	case gpucontext.CursorResizeEW:
		return glfw.HResizeCursor
	}
	return glfw.ArrowCursor
}
