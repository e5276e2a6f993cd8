package entry

// IDAllocator keeps entry ids unique within one conversion result. The
// first claim of an id keeps it as-is; later claims of the same id get
// a letter suffix: smith2024, smith2024a, smith2024b, ...
type IDAllocator map[string]int

func (a IDAllocator) Claim(id string) string {
	n, seen := a[id]
	if !seen {
		a[id] = 1
		return id
	}
	for {
		candidate := id + idSuffix(n)
		if _, taken := a[candidate]; !taken {
			a[id] = n + 1
			a[candidate] = 1
			return candidate
		}
		n++
	}
}

// idSuffix is the letter form of n: a..z, then aa, ab, ...
func idSuffix(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
