package core

import "sync"

// EventCode identifies a kind of event. System internal codes live below
// 255; applications should use codes beyond that.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// A scene object was spawned. Data is the object id string.
	EVENT_CODE_OBJECT_SPAWNED EventCode = 0x10
	// A watched asset file changed on disk. Data is the asset path string.
	EVENT_CODE_ASSET_CHANGED EventCode = 0x11

	MAX_EVENT_CODE EventCode = 0xFF
)

// EventContext carries an event code plus its typed payload.
type EventContext struct {
	Type EventCode
	Data interface{}
}

// KeyEvent is the payload of key press/release events.
type KeyEvent struct {
	KeyCode KeyCode
}

// SystemEvent is the payload of window-level events.
type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// FnOnEvent is the callback invoked when a matching event fires.
type FnOnEvent func(context EventContext)

type eventSystemState struct {
	// Registered callbacks per event code.
	registered map[EventCode][]FnOnEvent
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]FnOnEvent),
		}
	})
	isInitialized = true
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[EventCode][]FnOnEvent)
	}
	isInitialized = false
	return nil
}

// EventRegister adds a callback invoked whenever an event with the provided
// code is fired. Dispatch order follows registration order.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire dispatches the event synchronously to all listeners registered
// for its code, in registration order. Everything runs on the calling
// goroutine, so frame code always observes a consistent world.
func EventFire(context EventContext) bool {
	if !isInitialized {
		return false
	}
	listeners := eventState.registered[context.Type]
	if len(listeners) == 0 {
		return false
	}
	for _, fn := range listeners {
		fn(context)
	}
	return true
}
