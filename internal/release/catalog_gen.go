package release

// catalog lists python-build-standalone builds, newest tag first. Entries
// marked Unverified have no published digest yet; `go run ./cmd/gencatalog`
// regenerates this file from the release SHA256SUMS.
var catalog = Catalog{
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 1), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.12.1%2B20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 7), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.11.7%2B20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 10, 13), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.10.13%2B20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 9, 18), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.9.18%2B20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 8, 18), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20240107/cpython-3.8.18%2B20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 12, 0), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.12.0%2B20231002-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-x86_64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-aarch64-unknown-linux-gnu-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "apple", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-x86_64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-aarch64-apple-darwin-pgo%2Blto-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-x86_64-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
	{Kind: "cpython", Version: NewVersion(3, 11, 6), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo", URL: "https://github.com/indygreg/python-build-standalone/releases/download/20231002/cpython-3.11.6%2B20231002-i686-pc-windows-msvc-shared-pgo-full.tar.zst", Unverified: true},
}
