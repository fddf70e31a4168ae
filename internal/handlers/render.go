package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashMessage = "message"
	flashError   = "error"
)

func setFlash(c *gin.Context, kind, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, kind)
	_ = sess.Save()
}

// takeFlash reads and clears a flash message. Write-once, read-once.
func takeFlash(c *gin.Context, kind string) string {
	sess := sessions.Default(c)
	flashes := sess.Flashes(kind)
	if len(flashes) == 0 {
		return ""
	}
	_ = sess.Save()
	msg, _ := flashes[0].(string)
	return msg
}

// render wraps c.HTML and hands every template its pending flash messages.
func (h *Handler) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = takeFlash(c, flashMessage)
	data["FlashError"] = takeFlash(c, flashError)
	c.HTML(status, tmpl, data)
}
