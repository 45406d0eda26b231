package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lists/internal/listerror"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("Error after response was sent")
		return
	}

	switch err := err.(type) {
	case *echo.HTTPError:
		if err.Internal != nil {
			logrus.WithError(err.Internal).Debug("Error [ECHO]")
		}
		_ = c.JSON(err.Code, echo.Map{
			"error": echo.Map{
				"message": err.Message,
			},
		})
	case *listerror.ListError:
		status := listerror.StatusCode(err)
		if status < 500 {
			_ = c.JSON(status, err)
			return
		}

		internal(err, c)
	default:
		internal(err, c)
	}
}

func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	logrus.WithError(err).WithField("id", id).Error("Unexpected error")

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}
