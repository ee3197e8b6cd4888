package middleware

import (
	"log"
	"strings"

	"academy/models"

	"github.com/gofiber/fiber/v2"
)

// Admin-only page prefixes - require ADMIN role
var adminOnlyPrefixes = []string{
	"/admin/users",
	"/admin/settings",
	"/admin/audit",
	"/admin/roles",
	"/admin/analytics",
	"/admin/hub",
	"/admin/realtime",
}

// Content editor prefixes - ADMIN or MENTOR can access
var contentEditorPrefixes = []string{
	"/admin/content",
	"/admin/courses",
	"/admin/lessons",
	"/admin/projects",
	"/admin/media",
	"/admin/faqs",
	"/admin/testimonials",
}

// Public routes - accessible without authentication
var publicRoutes = []string{
	"/",
	"/login",
	"/signup",
	"/courses",
	"/projects",
	"/tutorials",
	"/about",
	"/contact",
	"/faq",
	"/search",
	"/verify",
}

var publicPrefixes = []string{
	"/courses/",
	"/projects/",
	"/tutorials/",
	"/verify/",
	"/static/",
	"/api/auth",
	"/api/public",
	"/api/search",
}

// guardSession is the subset of token claims the guard needs
type guardSession struct {
	userID      uint
	roles       []string
	defaultRole string
}

func (s *guardSession) hasRole(role string) bool {
	for _, r := range s.roles {
		if r == role {
			return true
		}
	}
	return false
}

// sanitizePath strips path traversal and injection attempts from the
// request path before classification
func sanitizePath(path string) string {
	sanitized := strings.ReplaceAll(path, "..", "")
	sanitized = strings.ReplaceAll(sanitized, "<", "")
	sanitized = strings.ReplaceAll(sanitized, ">", "")
	lower := strings.ToLower(sanitized)
	for {
		idx := strings.Index(lower, "javascript:")
		if idx < 0 {
			break
		}
		sanitized = sanitized[:idx] + sanitized[idx+len("javascript:"):]
		lower = strings.ToLower(sanitized)
	}
	return strings.TrimSpace(sanitized)
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isPublicPath(path string) bool {
	for _, r := range publicRoutes {
		if path == r {
			return true
		}
	}
	return hasAnyPrefix(path, publicPrefixes)
}

// logSecurityEvent records security-relevant guard decisions
func logSecurityEvent(event string, fields map[string]interface{}) {
	log.Printf("[SECURITY] %s: %v", event, fields)
}

// addSecurityHeaders attaches protective headers to the response
func addSecurityHeaders(c *fiber.Ctx) {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-XSS-Protection", "1; mode=block")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
}

// guardToken reads the session from the session cookie or bearer header
func guardToken(c *fiber.Ctx) *guardSession {
	raw := c.Cookies("session")
	if raw == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			raw = authHeader[len("Bearer "):]
		}
	}
	if raw == "" {
		return nil
	}

	claims, err := ParseToken(raw)
	if err != nil {
		return nil
	}

	session := &guardSession{roles: claimRoles(claims)}
	if id, ok := claims["userId"].(float64); ok {
		session.userID = uint(id)
	}
	if role, ok := claims["defaultRole"].(string); ok {
		session.defaultRole = role
	}
	return session
}

func redirectToLogin(c *fiber.Ctx, loginPath, callback string) error {
	addSecurityHeaders(c)
	return c.Redirect(loginPath+"?callbackUrl="+callback, fiber.StatusFound)
}

// RouteGuard protects page routes: public routes pass through, protected
// routes without a session redirect to the role-appropriate login page,
// authenticated users are kept off login pages, and role mismatches on
// gated prefixes land on /dashboard.
//
// Policy: if the guard itself fails, the request is allowed through with
// security headers attached rather than turning a guard bug into a full
// outage. This fail-open behavior is deliberate and covered by tests.
func RouteGuard() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logSecurityEvent("MIDDLEWARE_ERROR", map[string]interface{}{
					"error": r,
					"path":  c.Path(),
					"ip":    c.IP(),
				})
				addSecurityHeaders(c)
				err = c.Next()
			}
		}()

		originalPath := c.Path()
		path := sanitizePath(originalPath)

		if path != originalPath {
			logSecurityEvent("PATH_MANIPULATION_ATTEMPT", map[string]interface{}{
				"original":  originalPath,
				"sanitized": path,
				"ip":        c.IP(),
			})
		}

		isAdminRoute := strings.HasPrefix(path, "/admin")
		isCmsRoute := strings.HasPrefix(path, "/cms")
		isDashboardRoute := strings.HasPrefix(path, "/dashboard")
		isMyCoursesRoute := strings.HasPrefix(path, "/my-courses")
		isProfileRoute := strings.HasPrefix(path, "/profile")
		isSettingsRoute := strings.HasPrefix(path, "/settings")
		isAdminLoginRoute := path == "/admin/login"
		isLoginRoute := path == "/login"
		isSignupRoute := path == "/signup"

		// Public routes pass through (unless under /admin or /cms)
		if isPublicPath(path) && !isAdminRoute && !isCmsRoute {
			addSecurityHeaders(c)
			return c.Next()
		}

		session := guardToken(c)

		isProtectedRoute := isDashboardRoute || isMyCoursesRoute || isProfileRoute ||
			isSettingsRoute || isAdminRoute || isCmsRoute

		// Unauthenticated access to a protected route redirects to the
		// role-appropriate login page with a callback URL
		if isProtectedRoute && session == nil && !isAdminLoginRoute && !isLoginRoute {
			logSecurityEvent("UNAUTHORIZED_ACCESS_ATTEMPT", map[string]interface{}{
				"path": path,
				"ip":   c.IP(),
			})
			if isAdminRoute || isCmsRoute {
				return redirectToLogin(c, "/admin/login", path)
			}
			return redirectToLogin(c, "/login", path)
		}

		// Authenticated users are redirected away from login pages
		if session != nil && (isLoginRoute || isSignupRoute || isAdminLoginRoute) {
			logSecurityEvent("AUTHENTICATED_USER_REDIRECTED", map[string]interface{}{
				"path":   path,
				"userId": session.userID,
				"roles":  session.roles,
			})
			addSecurityHeaders(c)
			if session.hasRole(models.RoleAdmin) {
				return c.Redirect("/admin/hub", fiber.StatusFound)
			}
			return c.Redirect("/dashboard", fiber.StatusFound)
		}

		if session == nil {
			addSecurityHeaders(c)
			return c.Next()
		}

		isAdmin := session.hasRole(models.RoleAdmin)
		isMentor := session.hasRole(models.RoleMentor)

		// CMS routes require ADMIN
		if isCmsRoute && !isAdmin {
			logSecurityEvent("INSUFFICIENT_PERMISSIONS", map[string]interface{}{
				"path":   path,
				"userId": session.userID,
				"reason": "CMS_ACCESS_DENIED",
			})
			addSecurityHeaders(c)
			return c.Redirect("/dashboard", fiber.StatusFound)
		}

		// Admin routes are gated per prefix list
		if isAdminRoute && !isAdminLoginRoute {
			switch {
			case hasAnyPrefix(path, adminOnlyPrefixes):
				if !isAdmin {
					logSecurityEvent("INSUFFICIENT_PERMISSIONS", map[string]interface{}{
						"path":   path,
						"userId": session.userID,
						"reason": "ADMIN_ONLY_ROUTE",
					})
					addSecurityHeaders(c)
					return c.Redirect("/dashboard", fiber.StatusFound)
				}
			case hasAnyPrefix(path, contentEditorPrefixes):
				if !isAdmin && !isMentor {
					logSecurityEvent("INSUFFICIENT_PERMISSIONS", map[string]interface{}{
						"path":   path,
						"userId": session.userID,
						"reason": "CONTENT_EDITOR_ACCESS_DENIED",
					})
					addSecurityHeaders(c)
					return c.Redirect("/dashboard", fiber.StatusFound)
				}
			default:
				if !isAdmin {
					logSecurityEvent("INSUFFICIENT_PERMISSIONS", map[string]interface{}{
						"path":   path,
						"userId": session.userID,
						"reason": "DEFAULT_ADMIN_ACCESS_DENIED",
					})
					addSecurityHeaders(c)
					return c.Redirect("/dashboard", fiber.StatusFound)
				}
			}
		}

		addSecurityHeaders(c)
		return c.Next()
	}
}
