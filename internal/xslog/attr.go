package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func Feed(name string) slog.Attr {
	const feedKey = "feed"
	return slog.String(feedKey, name)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Interval(interval time.Duration) slog.Attr {
	const intervalKey = "interval"
	return slog.Duration(intervalKey, interval)
}

func GearUUID(uuid string) slog.Attr {
	const gearUUIDKey = "gear_uuid"
	return slog.String(gearUUIDKey, uuid)
}

func ActivityType(label string) slog.Attr {
	const activityTypeKey = "activity_type"
	return slog.String(activityTypeKey, label)
}

func Setting(setting string) slog.Attr {
	const settingKey = "setting"
	return slog.String(settingKey, setting)
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Addr(addr string) slog.Attr {
	const addrKey = "addr"
	return slog.String(addrKey, addr)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}
