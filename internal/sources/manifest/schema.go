package manifest

// File is the root structure of the assets manifest written by the
// ingestion side:
//
//	assets:
//	  - name: intro
//	    kind: video
//	    src: /media/intro.mp4
//	    duration: 12.5
//	    thumbnail: /thumbs/intro.jpg
type File struct {
	Assets []Entry `yaml:"assets"`
}

// Entry is one probed media item.
type Entry struct {
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`
	Src       string  `yaml:"src"`
	Duration  float64 `yaml:"duration"`
	Thumbnail string  `yaml:"thumbnail,omitempty"`
}
