package middleware

import "github.com/gin-gonic/gin"

// GetAgentID returns the authenticated agent identity, if any.
func GetAgentID(c *gin.Context) (string, bool) {
	v, ok := c.Get("agent_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
