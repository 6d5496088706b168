package common

import "fmt"

func RedisKeySchedulerTick(name string) string {
	return fmt.Sprintf("schedulertick:%s", name)
}
