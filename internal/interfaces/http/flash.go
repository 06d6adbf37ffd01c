package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Categorías de flash; coinciden con las clases de alerta de las vistas.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashError   = "error"
)

const (
	flashCookieName  = "kits_flash"
	flashKeyCategory = "flash_category"
	flashKeyMessage  = "flash_message"
)

// Flash mensaje de un solo uso mostrado tras una redirección.
type Flash struct {
	Category string
	Message  string
}

// NewFlashStore sesiones del lado del servidor (memoria) usadas sólo para mensajes flash.
func NewFlashStore(secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     30 * time.Minute,
		KeyLookup:      "cookie:" + flashCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// setFlash guarda el mensaje en la sesión; un error de sesión sólo pierde el mensaje.
func setFlash(c *fiber.Ctx, store *session.Store, category, message string) {
	sess, err := store.Get(c)
	if err != nil {
		return
	}
	sess.Set(flashKeyCategory, category)
	sess.Set(flashKeyMessage, message)
	_ = sess.Save()
}

// popFlash devuelve y borra el mensaje pendiente; nil si no hay.
func popFlash(c *fiber.Ctx, store *session.Store) *Flash {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	msg, _ := sess.Get(flashKeyMessage).(string)
	if msg == "" {
		return nil
	}
	category, _ := sess.Get(flashKeyCategory).(string)
	sess.Delete(flashKeyCategory)
	sess.Delete(flashKeyMessage)
	_ = sess.Save()
	return &Flash{Category: category, Message: msg}
}
