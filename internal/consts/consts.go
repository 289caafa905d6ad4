package consts

// DeadLinkSentinel marks a placeholder some hosts (notably Imgur) serve
// with status 200 when the real image has been removed. The resolved URL
// is the only thing that gives it away.
const DeadLinkSentinel = "removed.png"

type StorageSupplier string

const (
	AliOss StorageSupplier = "ali_oss"
)

func (s StorageSupplier) String() string {
	return string(s)
}
