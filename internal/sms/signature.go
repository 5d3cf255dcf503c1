package sms

import (
	"net/http"

	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/httpkit"
	"tradie_receptionist/platform/logger"

	"github.com/gin-gonic/gin"
	twilioclient "github.com/twilio/twilio-go/client"
)

// SignatureHeader carries the request signature computed by the SMS platform.
const SignatureHeader = "X-Twilio-Signature"

// SignatureMiddleware rejects inbound SMS webhooks whose signature does not
// match the auth token. It passes everything through when validation is off.
func SignatureMiddleware(cfg config.SignatureConfig, log *logger.Logger) gin.HandlerFunc {
	if !cfg.GetTwilioValidateSignature() {
		return func(c *gin.Context) { c.Next() }
	}

	validator := twilioclient.NewRequestValidator(cfg.GetTwilioAuthToken())
	baseURL := cfg.GetPublicBaseURL()

	return func(c *gin.Context) {
		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			log.WithContext(c.Request.Context()).Warn("sms webhook missing signature")
			reject(c)
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			log.WithContext(c.Request.Context()).Warn("sms webhook form unreadable", "error", err)
			reject(c)
			return
		}
		params := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		if !validator.Validate(baseURL+c.Request.URL.RequestURI(), params, signature) {
			log.WithContext(c.Request.Context()).Warn("sms webhook signature mismatch", "path", c.Request.URL.Path)
			reject(c)
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context) {
	httpkit.TwiML(c, http.StatusForbidden)
	c.Abort()
}
