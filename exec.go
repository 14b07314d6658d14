package carve

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/pixelforge/carve/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions lists the supported source file types.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// Ops holds the execution options of one CLI invocation.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about one processed image.
type result struct {
	path string
	err  error
}

// Execute runs the resizing process over the source, which may be a single
// image file, a remote URL, a pipe or a whole directory. Directories are
// processed concurrently by a bounded worker pool.
func (p *Processor) Execute(op *Ops) {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ CARVE", utils.StatusMessage),
		utils.DecorateText("⇢ resizing image (be patient, it may take a while)...", utils.DefaultMessage),
	)
	p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	var (
		fs  os.FileInfo
		err error
	)
	src := op.Src

	// A remote source is downloaded into a temporary file first.
	if utils.IsValidUrl(op.Src) {
		tmp, err := utils.DownloadImage(op.Src)
		if tmp != nil {
			defer os.Remove(tmp.Name())
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("failed to download the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		src = tmp.Name()
	}

	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		log.Fatalf(
			utils.DecorateText("failed to load the source image: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = op.processDir(p, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := filepath.Ext(op.Dst)
		if !utils.Contains(validExtensions, ext) && op.Dst != op.PipeName {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}
		err = op.process(p, src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// processDir walks the source directory recursively and feeds every
// supported image file to a pool of resizing workers.
func (op *Ops) processDir(p *Processor, src string) error {
	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.Mkdir(op.Dst, 0755); err != nil {
			return err
		}
	}

	if op.Workers <= 0 || op.Workers > maxWorkers {
		op.Workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, src, validExtensions)

	var wg sync.WaitGroup
	wg.Add(op.Workers)
	for i := 0; i < op.Workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, op.Dst, ch, done, paths)
		}()
	}

	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var err error
	for res := range ch {
		if res.err != nil {
			err = res.err
		}
		op.printOpStatus(res.path, err)
	}

	if werr := <-errc; werr != nil {
		fmt.Fprint(os.Stderr, utils.DecorateText(werr.Error(), utils.ErrorMessage))
	}
	return err
}

// consumer reads path names from the paths channel and calls the resizing
// processor against each source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{path: src, err: err}:
		}
	}
}

// process calls the resizer over one source image.
func (op *Ops) process(p *Processor, in, out string) error {
	p.Spinner.Start()

	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ CARVE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ CARVE", utils.StatusMessage),
		utils.DecorateText("resizing image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return err
	}

	// Capture CTRL-C and restore the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		p.Spinner.RestoreCursor()
		if f, ok := dst.(*os.File); ok {
			os.Remove(f.Name())
		}
		os.Exit(1)
	}()

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			f.Close()
		}
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	}()

	if err := p.Process(src, dst); err != nil {
		// remove the generated image file in case of an error
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return err
	}
	p.Spinner.StopMsg = successMsg
	p.Spinner.Stop()
	return nil
}

// pathToFile converts the source and destination paths to a readable and a
// writable file, honoring the stdin/stdout pipe name.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the resizing process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError resizing the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir walks the source directory tree in a separate goroutine and sends
// the path of each supported regular file over the returned channel. It
// finishes early when the done channel is closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, filepath.Ext(f.Name())) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
