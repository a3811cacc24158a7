//go:build windows

package accessibility

import (
	"runtime"
	"strings"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/lxn/win"

	"selection-hook/messages"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
	iidITextPattern    = ole.NewGUID("{32EBA289-3583-42C9-9C59-3B6D9A1E9B6A}")
	iidILegacyPattern  = ole.NewGUID("{828055AD-355B-4435-86D5-3B51C14A9B1B}")
	iidIAccessible     = ole.NewGUID("{618736E0-3C3D-11CF-810C-00AA00389B71}")
)

const (
	uiaTextPatternID             = 10014
	uiaLegacyIAccessiblePattern  = 10018
	uiaIsSelectionActiveProperty = 30034

	uiaControlTypeText     = 50020
	uiaControlTypeGroup    = 50026
	uiaControlTypeDocument = 50030
	uiaControlTypeWindow   = 50032

	textUnitDocument = 6

	objidClient = 0xFFFFFFFC

	emGetSel     = 0x00B0
	emGetSelText = 0x0400 + 70 // rich edit EM_GETSELTEXT
	wmGetText    = 0x000D

	// bound on the focused-control strategy's selection length
	maxControlTextLen = 8192

	rpcEChangedMode = 0x80010106
)

var (
	oleaccDLL                      = syscall.NewLazyDLL("oleacc.dll")
	oleaut32DLL                    = syscall.NewLazyDLL("oleaut32.dll")
	procAccessibleObjectFromWindow = oleaccDLL.NewProc("AccessibleObjectFromWindow")
	procSysFreeString              = oleaut32DLL.NewProc("SysFreeString")
)

func succeeded(hr uintptr) bool { return int32(hr) >= 0 }

func freeBSTR(b *uint16) {
	if b != nil {
		procSysFreeString.Call(uintptr(unsafe.Pointer(b)))
	}
}

// COM interface wrappers. Only the methods this package calls are wired;
// vtable layouts follow UIAutomationClient.h declaration order.

type iuiAutomation struct{ ole.IUnknown }

type iuiAutomationVtbl struct {
	ole.IUnknownVtbl
	CompareElements        uintptr
	CompareRuntimeIds      uintptr
	GetRootElement         uintptr
	ElementFromHandle      uintptr
	ElementFromPoint       uintptr
	ElementFromIAccessible uintptr
	GetFocusedElement      uintptr
}

func (v *iuiAutomation) vtbl() *iuiAutomationVtbl {
	return (*iuiAutomationVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iuiAutomation) elementFromHandle(w Window) *uiaElement {
	var elem *uiaElement
	hr, _, _ := syscall.SyscallN(v.vtbl().ElementFromHandle,
		uintptr(unsafe.Pointer(v)), uintptr(w), uintptr(unsafe.Pointer(&elem)))
	if !succeeded(hr) {
		return nil
	}
	return elem
}

func (v *iuiAutomation) focusedElement() *uiaElement {
	var elem *uiaElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetFocusedElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&elem)))
	if !succeeded(hr) {
		return nil
	}
	return elem
}

type uiaElement struct{ ole.IUnknown }

type uiaElementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                  uintptr
	GetRuntimeId              uintptr
	FindFirst                 uintptr
	FindAll                   uintptr
	FindFirstBuildCache       uintptr
	FindAllBuildCache         uintptr
	BuildUpdatedCache         uintptr
	GetCurrentPropertyValue   uintptr
	GetCurrentPropertyValueEx uintptr
	GetCachedPropertyValue    uintptr
	GetCachedPropertyValueEx  uintptr
	GetCurrentPatternAs       uintptr
	GetCachedPatternAs        uintptr
	GetCurrentPattern         uintptr
	GetCachedPattern          uintptr
	GetCachedParent           uintptr
	GetCachedChildren         uintptr
	GetCurrentProcessId       uintptr
	GetCurrentControlType     uintptr
}

func (v *uiaElement) vtbl() *uiaElementVtbl {
	return (*uiaElementVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *uiaElement) controlType() int32 {
	var ct int32
	syscall.SyscallN(v.vtbl().GetCurrentControlType,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&ct)))
	return ct
}

// patternAs resolves a pattern on the element, returning a raw interface
// pointer of the requested IID or nil.
func (v *uiaElement) patternAs(patternID int32, iid *ole.GUID) unsafe.Pointer {
	var out unsafe.Pointer
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentPatternAs,
		uintptr(unsafe.Pointer(v)), uintptr(patternID),
		uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out)))
	if !succeeded(hr) {
		return nil
	}
	return out
}

type uiaTextPattern struct{ ole.IUnknown }

type uiaTextPatternVtbl struct {
	ole.IUnknownVtbl
	RangeFromPoint            uintptr
	RangeFromChild            uintptr
	GetSelection              uintptr
	GetVisibleRanges          uintptr
	GetDocumentRange          uintptr
	GetSupportedTextSelection uintptr
}

func (v *uiaTextPattern) vtbl() *uiaTextPatternVtbl {
	return (*uiaTextPatternVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *uiaTextPattern) selection() *uiaTextRangeArray {
	var arr *uiaTextRangeArray
	hr, _, _ := syscall.SyscallN(v.vtbl().GetSelection,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&arr)))
	if !succeeded(hr) {
		return nil
	}
	return arr
}

func (v *uiaTextPattern) documentRange() *uiaTextRange {
	var r *uiaTextRange
	hr, _, _ := syscall.SyscallN(v.vtbl().GetDocumentRange,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&r)))
	if !succeeded(hr) {
		return nil
	}
	return r
}

type uiaTextRangeArray struct{ ole.IUnknown }

type uiaTextRangeArrayVtbl struct {
	ole.IUnknownVtbl
	GetLength  uintptr
	GetElement uintptr
}

func (v *uiaTextRangeArray) vtbl() *uiaTextRangeArrayVtbl {
	return (*uiaTextRangeArrayVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *uiaTextRangeArray) length() int32 {
	var n int32
	syscall.SyscallN(v.vtbl().GetLength,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&n)))
	return n
}

func (v *uiaTextRangeArray) element(i int32) *uiaTextRange {
	var r *uiaTextRange
	hr, _, _ := syscall.SyscallN(v.vtbl().GetElement,
		uintptr(unsafe.Pointer(v)), uintptr(i), uintptr(unsafe.Pointer(&r)))
	if !succeeded(hr) {
		return nil
	}
	return r
}

type uiaTextRange struct{ ole.IUnknown }

type uiaTextRangeVtbl struct {
	ole.IUnknownVtbl
	Clone                 uintptr
	Compare               uintptr
	CompareEndpoints      uintptr
	ExpandToEnclosingUnit uintptr
	FindAttribute         uintptr
	FindText              uintptr
	GetAttributeValue     uintptr
	GetBoundingRectangles uintptr
	GetEnclosingElement   uintptr
	GetText               uintptr
}

func (v *uiaTextRange) vtbl() *uiaTextRangeVtbl {
	return (*uiaTextRangeVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *uiaTextRange) text() string {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetText,
		uintptr(unsafe.Pointer(v)), uintptr(^uintptr(0)), uintptr(unsafe.Pointer(&bstr)))
	if !succeeded(hr) || bstr == nil {
		return ""
	}
	defer freeBSTR(bstr)
	return ole.BstrToString(bstr)
}

func (v *uiaTextRange) expandToDocument() bool {
	hr, _, _ := syscall.SyscallN(v.vtbl().ExpandToEnclosingUnit,
		uintptr(unsafe.Pointer(v)), uintptr(textUnitDocument))
	return succeeded(hr)
}

func (v *uiaTextRange) selectionActive() bool {
	var variant ole.VARIANT
	ole.VariantInit(&variant)
	defer ole.VariantClear(&variant)
	hr, _, _ := syscall.SyscallN(v.vtbl().GetAttributeValue,
		uintptr(unsafe.Pointer(v)), uintptr(uiaIsSelectionActiveProperty),
		uintptr(unsafe.Pointer(&variant)))
	return succeeded(hr) && variant.VT == ole.VT_BOOL && variant.Val != 0
}

// boundingRectangles returns the range's line rectangles as flat
// (left, top, width, height) quadruples.
func (v *uiaTextRange) boundingRectangles() []float64 {
	var psa *ole.SafeArray
	hr, _, _ := syscall.SyscallN(v.vtbl().GetBoundingRectangles,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&psa)))
	if !succeeded(hr) || psa == nil {
		return nil
	}
	sac := &ole.SafeArrayConversion{Array: psa}
	defer sac.Release()
	vals := sac.ToValueArray()
	out := make([]float64, 0, len(vals))
	for _, val := range vals {
		f, ok := val.(float64)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return out
}

type uiaLegacyPattern struct{ ole.IUnknown }

type uiaLegacyPatternVtbl struct {
	ole.IUnknownVtbl
	Select                     uintptr
	DoDefaultAction            uintptr
	SetValue                   uintptr
	GetCurrentChildId          uintptr
	GetCurrentName             uintptr
	GetCurrentValue            uintptr
	GetCurrentDescription      uintptr
	GetCurrentRole             uintptr
	GetCurrentState            uintptr
	GetCurrentHelp             uintptr
	GetCurrentKeyboardShortcut uintptr
	GetCurrentSelection        uintptr
	GetCurrentDefaultAction    uintptr
	GetCachedChildId           uintptr
	GetCachedName              uintptr
	GetCachedValue             uintptr
	GetCachedDescription       uintptr
	GetCachedRole              uintptr
	GetCachedState             uintptr
	GetCachedHelp              uintptr
	GetCachedKeyboardShortcut  uintptr
	GetCachedSelection         uintptr
	GetCachedDefaultAction     uintptr
	GetIAccessible             uintptr
}

func (v *uiaLegacyPattern) vtbl() *uiaLegacyPatternVtbl {
	return (*uiaLegacyPatternVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *uiaLegacyPattern) accessible() *accObject {
	var acc *accObject
	hr, _, _ := syscall.SyscallN(v.vtbl().GetIAccessible,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&acc)))
	if !succeeded(hr) {
		return nil
	}
	return acc
}

// accObject wraps IAccessible (an IDispatch-derived interface).
type accObject struct{ ole.IUnknown }

type accObjectVtbl struct {
	ole.IUnknownVtbl
	GetTypeInfoCount       uintptr
	GetTypeInfo            uintptr
	GetIDsOfNames          uintptr
	Invoke                 uintptr
	GetAccParent           uintptr
	GetAccChildCount       uintptr
	GetAccChild            uintptr
	GetAccName             uintptr
	GetAccValue            uintptr
	GetAccDescription      uintptr
	GetAccRole             uintptr
	GetAccState            uintptr
	GetAccHelp             uintptr
	GetAccHelpTopic        uintptr
	GetAccKeyboardShortcut uintptr
	GetAccFocus            uintptr
	GetAccSelection        uintptr
	GetAccDefaultAction    uintptr
	AccSelect              uintptr
	AccLocation            uintptr
	AccNavigate            uintptr
	AccHitTest             uintptr
	AccDoDefaultAction     uintptr
	PutAccName             uintptr
	PutAccValue            uintptr
}

func (v *accObject) vtbl() *accObjectVtbl {
	return (*accObjectVtbl)(unsafe.Pointer(v.RawVTable))
}

func childSelfVariant() ole.VARIANT {
	var variant ole.VARIANT
	ole.VariantInit(&variant)
	variant.VT = ole.VT_I4
	variant.Val = 0 // CHILDID_SELF
	return variant
}

func (v *accObject) bstrProperty(method uintptr) string {
	child := childSelfVariant()
	defer ole.VariantClear(&child)
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(method,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&child)),
		uintptr(unsafe.Pointer(&bstr)))
	if !succeeded(hr) || bstr == nil {
		return ""
	}
	defer freeBSTR(bstr)
	return ole.BstrToString(bstr)
}

func (v *accObject) name() string  { return v.bstrProperty(v.vtbl().GetAccName) }
func (v *accObject) value() string { return v.bstrProperty(v.vtbl().GetAccValue) }

// selectedText resolves the object's accSelection to text: the selection
// may come back as a plain string or as a child accessible object whose
// name/value holds the text.
func (v *accObject) selectedText() (string, *accObject) {
	var variant ole.VARIANT
	ole.VariantInit(&variant)
	defer ole.VariantClear(&variant)
	hr, _, _ := syscall.SyscallN(v.vtbl().GetAccSelection,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&variant)))
	if !succeeded(hr) || variant.VT == ole.VT_EMPTY {
		return "", nil
	}

	switch variant.VT {
	case ole.VT_BSTR:
		if variant.Val == 0 {
			return "", nil
		}
		return ole.BstrToString((*uint16)(unsafe.Pointer(uintptr(variant.Val)))), nil

	case ole.VT_DISPATCH:
		disp := variant.ToIDispatch()
		if disp == nil {
			return "", nil
		}
		var acc *accObject
		hr, _, _ := syscall.SyscallN(disp.VTable().QueryInterface,
			uintptr(unsafe.Pointer(disp)), uintptr(unsafe.Pointer(iidIAccessible)),
			uintptr(unsafe.Pointer(&acc)))
		if !succeeded(hr) || acc == nil {
			return "", nil
		}
		text := acc.name()
		if text == "" {
			text = acc.value()
		}
		if text == "" {
			acc.Release()
			return "", nil
		}
		return text, acc
	}
	return "", nil
}

// location fills the four corner points from the object's bounding box.
func (v *accObject) location(out *messages.SelectionResult) bool {
	child := childSelfVariant()
	defer ole.VariantClear(&child)
	var x, y, w, h int32
	hr, _, _ := syscall.SyscallN(v.vtbl().AccLocation,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&x)), uintptr(unsafe.Pointer(&y)),
		uintptr(unsafe.Pointer(&w)), uintptr(unsafe.Pointer(&h)),
		uintptr(unsafe.Pointer(&child)))
	if !succeeded(hr) {
		return false
	}
	out.StartTop = messages.Point{X: x, Y: y}
	out.StartBottom = messages.Point{X: x, Y: y + h}
	out.EndTop = messages.Point{X: x + w, Y: y}
	out.EndBottom = messages.Point{X: x + w, Y: y + h}
	out.PosLevel = messages.PosFull
	return true
}

// windowsProvider implements Provider on top of UI Automation.
type windowsProvider struct {
	uia            *iuiAutomation
	comInitialized bool
}

func newPlatformProvider() Provider { return &windowsProvider{} }

// Bind locks the goroutine to its OS thread and sets up the COM
// apartment. All query methods must stay on this goroutine.
func (p *windowsProvider) Bind() error {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED|ole.COINIT_DISABLE_OLE1DDE); err == nil {
		p.comInitialized = true
	} else {
		oleErr, ok := err.(*ole.OleError)
		switch {
		case ok && uint32(oleErr.Code()) == rpcEChangedMode:
			// COM already initialized with a different thread model
			// (common when embedded); usable, but not ours to uninit.
		case ok && int32(oleErr.Code()) >= 0:
			// S_FALSE: apartment exists, reference count incremented.
			p.comInitialized = true
		default:
			runtime.UnlockOSThread()
			return ErrPermissionDenied
		}
	}

	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		p.teardownCOM()
		return ErrStrategyUnavailable
	}
	p.uia = (*iuiAutomation)(unsafe.Pointer(unk))
	return nil
}

func (p *windowsProvider) Unbind() {
	if p.uia != nil {
		p.uia.Release()
		p.uia = nil
	}
	p.teardownCOM()
}

func (p *windowsProvider) teardownCOM() {
	if p.comInitialized {
		ole.CoUninitialize()
		p.comInitialized = false
	}
	runtime.UnlockOSThread()
}

func roleFromControlType(ct int32) Role {
	switch ct {
	case uiaControlTypeGroup:
		return RoleGroup
	case uiaControlTypeDocument:
		return RoleDocument
	case uiaControlTypeText:
		return RoleText
	case uiaControlTypeWindow:
		return RoleWindow
	case 0:
		return RoleUnknown
	}
	return RoleOther
}

// TreeSelection queries the focused element's selection through the text
// pattern, falling back to the document range's active selection and then
// to the legacy pattern exposed on the same element.
func (p *windowsProvider) TreeSelection(w Window, out *messages.SelectionResult) (Role, bool) {
	role := RoleWindow
	if p.uia == nil || w == 0 {
		return role, false
	}

	// A window that yields no element will not have a focused element
	// worth querying either.
	elem := p.uia.elementFromHandle(w)
	if elem == nil {
		return role, false
	}
	elem.Release()

	focused := p.uia.focusedElement()
	if focused == nil {
		return role, false
	}
	defer focused.Release()

	role = roleFromControlType(focused.controlType())

	if ptr := focused.patternAs(uiaTextPatternID, iidITextPattern); ptr != nil {
		tp := (*uiaTextPattern)(ptr)
		if p.textPatternSelection(tp, out) {
			tp.Release()
			return role, true
		}
		tp.Release()
	}

	if ptr := focused.patternAs(uiaLegacyIAccessiblePattern, iidILegacyPattern); ptr != nil {
		lp := (*uiaLegacyPattern)(ptr)
		ok := p.legacyPatternSelection(lp, out)
		lp.Release()
		if ok {
			return role, true
		}
	}

	return role, false
}

func (p *windowsProvider) textPatternSelection(tp *uiaTextPattern, out *messages.SelectionResult) bool {
	if ranges := tp.selection(); ranges != nil {
		n := ranges.length()
		for i := int32(0); i < n; i++ {
			r := ranges.element(i)
			if r == nil {
				continue
			}
			text := r.text()
			if text != "" {
				out.Text = text
				setRangeCoordinates(r, out)
				r.Release()
				ranges.Release()
				return true
			}
			r.Release()
		}
		ranges.Release()
	}

	// Some applications only report the selection on the document range.
	doc := tp.documentRange()
	if doc == nil {
		return false
	}
	defer doc.Release()

	if doc.selectionActive() {
		if text := doc.text(); text != "" {
			out.Text = text
			setRangeCoordinates(doc, out)
			return true
		}
	}
	if doc.expandToDocument() && doc.selectionActive() {
		if text := doc.text(); text != "" {
			out.Text = text
			setRangeCoordinates(doc, out)
			return true
		}
	}
	return false
}

func (p *windowsProvider) legacyPatternSelection(lp *uiaLegacyPattern, out *messages.SelectionResult) bool {
	acc := lp.accessible()
	if acc == nil {
		return false
	}
	defer acc.Release()

	text, sel := acc.selectedText()
	if sel != nil {
		sel.Release()
	}
	if text == "" {
		return false
	}
	out.Text = text
	return true
}

// setRangeCoordinates derives the four corner points from the range's
// per-line bounding rectangles. Rectangles narrower than 1px or taller
// than 100px are artifacts of collapsed or block-level ranges and are
// skipped when picking the first and last line.
func setRangeCoordinates(r *uiaTextRange, out *messages.SelectionResult) bool {
	rects := r.boundingRectangles()
	if len(rects) < 4 {
		return false
	}

	first, last := -1, -1
	for i := 0; i+3 < len(rects); i += 4 {
		if rects[i+2] > 1.0 && rects[i+3] < 100.0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return false
	}

	out.StartTop = messages.Point{X: int32(rects[first]), Y: int32(rects[first+1])}
	out.StartBottom = messages.Point{X: int32(rects[first]), Y: int32(rects[first+1] + rects[first+3])}
	out.EndTop = messages.Point{X: int32(rects[last] + rects[last+2]), Y: int32(rects[last+1])}
	out.EndBottom = messages.Point{X: int32(rects[last] + rects[last+2]), Y: int32(rects[last+1] + rects[last+3])}
	out.PosLevel = messages.PosFull
	return true
}

// FocusedControlSelection reads the focused control's selection range via
// edit-control messages. Works for classic edit and rich edit controls.
func (p *windowsProvider) FocusedControlSelection(w Window, out *messages.SelectionResult) bool {
	if w == 0 {
		return false
	}

	foregroundThread := win.GetWindowThreadProcessId(win.HWND(w), nil)
	currentThread := win.GetCurrentThreadId()

	attached := false
	if foregroundThread != currentThread {
		attached = win.AttachThreadInput(int32(currentThread), int32(foregroundThread), true)
	}
	focused := win.GetFocus()
	if attached {
		win.AttachThreadInput(int32(currentThread), int32(foregroundThread), false)
	}
	if focused == 0 {
		return false
	}

	var selStart, selEnd uint32
	win.SendMessage(focused, emGetSel,
		uintptr(unsafe.Pointer(&selStart)), uintptr(unsafe.Pointer(&selEnd)))
	if selStart >= selEnd || selEnd-selStart >= maxControlTextLen {
		return false
	}

	buf := make([]uint16, maxControlTextLen)
	n := win.SendMessage(focused, emGetSelText, 0, uintptr(unsafe.Pointer(&buf[0])))
	if n > 0 {
		out.Text = syscall.UTF16ToString(buf[:n])
	} else {
		full := make([]uint16, maxControlTextLen)
		total := win.SendMessage(focused, wmGetText, uintptr(len(full)), uintptr(unsafe.Pointer(&full[0])))
		if total == 0 || uintptr(selStart) >= total {
			return false
		}
		end := selEnd
		if uintptr(end) > total {
			end = uint32(total)
		}
		out.Text = syscall.UTF16ToString(full[selStart:end])
	}
	if strings.TrimSpace(out.Text) == "" {
		return false
	}

	// Control bounds only: coarse geometry, so PosLevel stays unset.
	var rect win.RECT
	if win.GetWindowRect(focused, &rect) {
		out.StartTop = messages.Point{X: rect.Left, Y: rect.Top}
		out.StartBottom = messages.Point{X: rect.Left, Y: rect.Bottom}
		out.EndTop = messages.Point{X: rect.Right, Y: rect.Top}
		out.EndBottom = messages.Point{X: rect.Right, Y: rect.Bottom}
	}
	return true
}

// LegacySelection queries the window's IAccessible object directly, for
// applications that never implemented UI Automation.
func (p *windowsProvider) LegacySelection(w Window, out *messages.SelectionResult) bool {
	if w == 0 {
		return false
	}

	var acc *accObject
	hr, _, _ := procAccessibleObjectFromWindow.Call(
		uintptr(w), uintptr(uint32(objidClient)),
		uintptr(unsafe.Pointer(iidIAccessible)), uintptr(unsafe.Pointer(&acc)))
	if !succeeded(hr) || acc == nil {
		return false
	}
	defer acc.Release()

	text, sel := acc.selectedText()
	if text == "" {
		if sel != nil {
			sel.Release()
		}
		return false
	}
	out.Text = text
	if sel != nil {
		sel.location(out)
		sel.Release()
	}
	return true
}
