package common

type Module string

const (
	ModuleMinting Module = "minting"
)

func (m Module) String() string {
	return string(m)
}
